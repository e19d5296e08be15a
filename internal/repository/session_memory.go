package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/guessbot-backend/internal/apperror"
	"github.com/rocketscienceinc/guessbot-backend/internal/entity"
)

type memoryEntry struct {
	session   entity.Session
	expiresAt time.Time
}

type memorySession struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository - process-local sessions for the console and tests.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySession{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	entry := memoryEntry{session: *session}
	if session.Secret != nil {
		secret := *session.Secret
		entry.session.Secret = &secret
	}

	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = entry

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	if !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt) {
		delete(that.sessions, id)
		return nil, apperror.ErrSessionNotFound
	}

	session := entry.session
	if session.Secret != nil {
		secret := *session.Secret
		session.Secret = &secret
	}

	return &session, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}
