package entity

import "time"

const (
	// MinNumber and MaxNumber bound both the secret and every accepted guess, inclusive.
	MinNumber = 0
	MaxNumber = 10
)

type State string

const (
	StateStart          State = ""
	StateAwaitingGuess  State = "awaiting_guess"
	StateWon            State = "won"
	StateAwaitingReplay State = "awaiting_replay"
	StateEnded          State = "ended"
)

type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictTooHigh Verdict = "too_high"
	VerdictTooLow  Verdict = "too_low"
)

// Session is the state of one game tied to one conversation.
type Session struct {
	ID          string    `json:"id"`
	Secret      *int      `json:"secret,omitempty"`
	State       State     `json:"state"`
	Attempts    int       `json:"attempts"`
	LastVerdict Verdict   `json:"last_verdict,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		State: StateStart,
	}
}

// Restart re-initialises the session in place for a new round with the given secret.
func (that *Session) Restart(secret int) {
	that.Secret = &secret
	that.Attempts = 0
	that.LastVerdict = ""
	that.State = StateAwaitingGuess
}

func (that *Session) IsEnded() bool {
	return that.State == StateEnded
}

func (that *Session) IsWon() bool {
	return that.LastVerdict == VerdictCorrect
}

func (that *Session) Touch(now time.Time) {
	that.UpdatedAt = now
}

func (v Verdict) IsTerminal() bool {
	return v == VerdictCorrect
}
