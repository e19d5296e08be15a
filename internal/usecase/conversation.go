package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/guessbot-backend/internal/apperror"
	"github.com/rocketscienceinc/guessbot-backend/internal/dialog"
	"github.com/rocketscienceinc/guessbot-backend/internal/entity"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameDialog interface {
	Begin(session *entity.Session) ([]dialog.Activity, error)
	Continue(session *entity.Session, text string) ([]dialog.Activity, error)
	Reprompt(session *entity.Session) ([]dialog.Activity, error)
}

// Reply is everything the bot says back for one turn.
type Reply struct {
	ConversationID string            `json:"conversation_id"`
	Activities     []dialog.Activity `json:"activities"`
	Ended          bool              `json:"ended"`
}

// ConversationManager runs turns for many conversations, one turn per conversation at a time.
type ConversationManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	dialog      gameDialog
	now         func() time.Time

	locksMutex sync.Mutex
	locks      map[string]*conversationLock
}

type conversationLock struct {
	sync.Mutex
	refs int
}

func NewConversationManager(logger *slog.Logger, sessionRepo sessionRepo, turns gameDialog) *ConversationManager {
	return &ConversationManager{
		logger:      logger.With("component", "conversation"),
		sessionRepo: sessionRepo,
		dialog:      turns,
		now:         time.Now,
		locks:       make(map[string]*conversationLock),
	}
}

// HandleMessage - processes one user message. A conversation without a session starts a new game
// and the message itself only opens the dialog.
func (that *ConversationManager) HandleMessage(ctx context.Context, conversationID, text string) (*Reply, error) {
	log := that.logger.With("method", "HandleMessage", "conversationID", conversationID)

	unlock := that.lock(conversationID)
	defer unlock()

	session, err := that.sessionRepo.GetByID(ctx, conversationID)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var activities []dialog.Activity

	if session == nil {
		log.Info("starting new session")

		session = entity.NewSession(conversationID)
		activities, err = that.dialog.Begin(session)
	} else {
		activities, err = that.dialog.Continue(session, text)
	}

	if err != nil {
		log.Error("turn failed", "error", err)
		return nil, fmt.Errorf("failed to run turn: %w", err)
	}

	if err = that.save(ctx, session); err != nil {
		return nil, err
	}

	return that.reply(session, activities), nil
}

// Resume - repeats the pending prompt for a returning client, starting a game when there is none.
func (that *ConversationManager) Resume(ctx context.Context, conversationID string) (*Reply, error) {
	log := that.logger.With("method", "Resume", "conversationID", conversationID)

	unlock := that.lock(conversationID)
	defer unlock()

	session, err := that.sessionRepo.GetByID(ctx, conversationID)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var activities []dialog.Activity

	if session == nil {
		log.Info("starting new session")

		session = entity.NewSession(conversationID)
		activities, err = that.dialog.Begin(session)
	} else {
		activities, err = that.dialog.Reprompt(session)
	}

	if err != nil {
		log.Error("resume failed", "error", err)
		return nil, fmt.Errorf("failed to resume: %w", err)
	}

	if err = that.save(ctx, session); err != nil {
		return nil, err
	}

	return that.reply(session, activities), nil
}

// save - persists the session, or discards it once the game has ended.
func (that *ConversationManager) save(ctx context.Context, session *entity.Session) error {
	if session.IsEnded() {
		err := that.sessionRepo.DeleteByID(ctx, session.ID)
		if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return nil
	}

	session.Touch(that.now())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *ConversationManager) reply(session *entity.Session, activities []dialog.Activity) *Reply {
	return &Reply{
		ConversationID: session.ID,
		Activities:     activities,
		Ended:          session.IsEnded(),
	}
}

func (that *ConversationManager) lock(conversationID string) func() {
	that.locksMutex.Lock()
	l, ok := that.locks[conversationID]
	if !ok {
		l = &conversationLock{}
		that.locks[conversationID] = l
	}
	l.refs++
	that.locksMutex.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		that.locksMutex.Lock()
		l.refs--
		if l.refs == 0 {
			delete(that.locks, conversationID)
		}
		that.locksMutex.Unlock()
	}
}
