package numberguess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/guessbot-backend/internal/apperror"
	"github.com/rocketscienceinc/guessbot-backend/internal/entity"
)

func TestEvaluate_AllPairs(t *testing.T) {
	cases := 0

	for secret := entity.MinNumber; secret <= entity.MaxNumber; secret++ {
		for guess := entity.MinNumber; guess <= entity.MaxNumber; guess++ {
			verdict := Evaluate(secret, guess)
			cases++

			switch {
			case guess == secret:
				assert.Equal(t, entity.VerdictCorrect, verdict, "secret=%d guess=%d", secret, guess)
			case guess > secret:
				assert.Equal(t, entity.VerdictTooHigh, verdict, "secret=%d guess=%d", secret, guess)
			default:
				assert.Equal(t, entity.VerdictTooLow, verdict, "secret=%d guess=%d", secret, guess)
			}
		}
	}

	require.Equal(t, 121, cases)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0))
	assert.True(t, InRange(5))
	assert.True(t, InRange(10))
	assert.False(t, InRange(-1))
	assert.False(t, InRange(11))
}

func TestJudge(t *testing.T) {
	t.Run("Non-terminal verdicts keep the secret", func(t *testing.T) {
		// Given: a session with secret 5
		session := entity.NewSession("conv")
		session.Restart(5)

		// When: two wrong guesses are judged
		high, low := 8, 2
		first, err := Judge(session, &high)
		require.NoError(t, err)
		second, err := Judge(session, &low)
		require.NoError(t, err)

		// Then: feedback is given and the secret is unchanged
		assert.Equal(t, entity.VerdictTooHigh, first)
		assert.Equal(t, entity.VerdictTooLow, second)
		assert.Equal(t, 5, *session.Secret)
		assert.Equal(t, 2, session.Attempts)
		assert.Equal(t, entity.VerdictTooLow, session.LastVerdict)
	})

	t.Run("Correct guess is recorded", func(t *testing.T) {
		session := entity.NewSession("conv")
		session.Restart(0)

		guess := 0
		verdict, err := Judge(session, &guess)

		require.NoError(t, err)
		assert.Equal(t, entity.VerdictCorrect, verdict)
		assert.True(t, session.IsWon())
	})

	t.Run("Missing secret is a contract violation", func(t *testing.T) {
		// Given: a session that was never started
		session := entity.NewSession("conv")
		guess := 3

		// When: a guess is judged
		_, err := Judge(session, &guess)

		// Then: ErrContractViolation is returned and nothing is recorded
		require.ErrorIs(t, err, apperror.ErrContractViolation)
		assert.Zero(t, session.Attempts)
	})

	t.Run("Missing guess is a contract violation", func(t *testing.T) {
		session := entity.NewSession("conv")
		session.Restart(4)

		_, err := Judge(session, nil)

		require.ErrorIs(t, err, apperror.ErrContractViolation)
	})
}
