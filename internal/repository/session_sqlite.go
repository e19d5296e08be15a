package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rocketscienceinc/guessbot-backend/internal/apperror"
	"github.com/rocketscienceinc/guessbot-backend/internal/entity"
)

type sqliteSession struct {
	conn *sql.DB
	ttl  time.Duration
	now  func() time.Time
}

// NewSQLiteSessionRepository - sessions in the sessions table; expired rows read as missing.
func NewSQLiteSessionRepository(conn *sql.DB, ttl time.Duration) SessionRepository {
	return &sqliteSession{
		conn: conn,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (that *sqliteSession) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	query := `INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`

	_, err = that.conn.ExecContext(ctx, query, session.ID, string(sessionJSON), that.expiresAt())
	if err != nil {
		return fmt.Errorf("can't save session: %w", err)
	}

	return nil
}

func (that *sqliteSession) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	query := `SELECT data FROM sessions WHERE id = ? AND expires_at > ?`

	var data string

	err := that.conn.QueryRowContext(ctx, query, id, that.now().UnixNano()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find session: %w", err)
	}

	var existingSession entity.Session
	if err = json.Unmarshal([]byte(data), &existingSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

func (that *sqliteSession) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`

	result, err := that.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("can't delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't count deleted sessions: %w", err)
	}

	if affected == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}

func (that *sqliteSession) expiresAt() int64 {
	if that.ttl <= 0 {
		return math.MaxInt64
	}

	return that.now().Add(that.ttl).UnixNano()
}
