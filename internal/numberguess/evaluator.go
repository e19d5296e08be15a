package numberguess

import (
	"fmt"

	"github.com/rocketscienceinc/guessbot-backend/internal/apperror"
	"github.com/rocketscienceinc/guessbot-backend/internal/entity"
)

// InRange reports whether v is an acceptable secret or guess.
func InRange(v int) bool {
	return entity.MinNumber <= v && v <= entity.MaxNumber
}

// Evaluate - compares a guess to the secret.
func Evaluate(secret, guess int) entity.Verdict {
	switch {
	case guess > secret:
		return entity.VerdictTooHigh
	case guess < secret:
		return entity.VerdictTooLow
	default:
		return entity.VerdictCorrect
	}
}

// Judge - evaluates a guess against the session's secret and records the outcome.
// The secret itself is never touched.
func Judge(session *entity.Session, guess *int) (entity.Verdict, error) {
	if session.Secret == nil {
		return "", fmt.Errorf("session %s has no secret: %w", session.ID, apperror.ErrContractViolation)
	}

	if guess == nil {
		return "", fmt.Errorf("session %s got no guess: %w", session.ID, apperror.ErrContractViolation)
	}

	verdict := Evaluate(*session.Secret, *guess)

	session.Attempts++
	session.LastVerdict = verdict

	return verdict, nil
}
