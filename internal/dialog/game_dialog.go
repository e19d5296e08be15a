package dialog

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/guessbot-backend/internal/apperror"
	"github.com/rocketscienceinc/guessbot-backend/internal/entity"
	"github.com/rocketscienceinc/guessbot-backend/internal/numberguess"
	"github.com/rocketscienceinc/guessbot-backend/internal/prompt"
)

const (
	textEnterNumber = "Please enter number"
	textTooHigh     = "The number is too high."
	textTooLow      = "The number is too low."
	textWon         = "Congratulations! You won. The number was %d"
	textPlayAgain   = "Would you like to play again?"
	textFarewell    = "Thank you for playing!!!"
)

// step runs one state. suspend means the dialog waits for the next user input.
type step func(session *entity.Session, t *turn) (next entity.State, suspend bool, err error)

// GameDialog drives a session through the guessing game one turn at a time.
type GameDialog struct {
	logger  *slog.Logger
	secrets numberguess.SecretSource
	number  *prompt.NumberPrompt
	confirm *prompt.ConfirmPrompt

	steps map[entity.State]step
}

func NewGameDialog(logger *slog.Logger, secrets numberguess.SecretSource) *GameDialog {
	dialog := &GameDialog{
		logger:  logger.With("component", "dialog"),
		secrets: secrets,
		number:  prompt.NewNumberPrompt(textEnterNumber, numberguess.InRange),
		confirm: prompt.NewConfirmPrompt(textPlayAgain),
	}

	dialog.steps = map[entity.State]step{
		entity.StateStart:          dialog.startStep,
		entity.StateAwaitingGuess:  dialog.guessStep,
		entity.StateWon:            dialog.wonStep,
		entity.StateAwaitingReplay: dialog.replayStep,
		entity.StateEnded:          dialog.endedStep,
	}

	return dialog
}

// Begin - runs the session from its current state without user input.
func (that *GameDialog) Begin(session *entity.Session) ([]Activity, error) {
	return that.run(session, &turn{})
}

// Continue - delivers one user input to the session.
func (that *GameDialog) Continue(session *entity.Session, text string) ([]Activity, error) {
	if session.IsEnded() {
		return nil, apperror.ErrSessionEnded
	}

	return that.run(session, &turn{input: text, hasInput: true})
}

// Reprompt - repeats the prompt the session is waiting on without consuming input.
func (that *GameDialog) Reprompt(session *entity.Session) ([]Activity, error) {
	if session.IsEnded() {
		return nil, apperror.ErrSessionEnded
	}

	return that.run(session, &turn{})
}

func (that *GameDialog) run(session *entity.Session, t *turn) ([]Activity, error) {
	log := that.logger.With("method", "run", "sessionID", session.ID)

	for {
		current := session.State

		handler, ok := that.steps[current]
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownState, current)
		}

		next, suspend, err := handler(session, t)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", current, err)
		}

		if next != current {
			log.Debug("state changed", "from", current, "to", next)
		}

		session.State = next

		if suspend {
			return t.activities, nil
		}
	}
}

func (that *GameDialog) startStep(session *entity.Session, _ *turn) (entity.State, bool, error) {
	session.Restart(that.secrets.Draw())

	return entity.StateAwaitingGuess, false, nil
}

func (that *GameDialog) guessStep(session *entity.Session, t *turn) (entity.State, bool, error) {
	if session.Secret == nil {
		return "", false, apperror.ErrContractViolation
	}

	text, ok := t.consume()
	if !ok {
		t.prompt(ActivityNumberPrompt, that.number.Text)
		return entity.StateAwaitingGuess, true, nil
	}

	guess, ok := that.number.Recognize(text)
	if !ok {
		t.prompt(ActivityNumberPrompt, that.number.Text)
		return entity.StateAwaitingGuess, true, nil
	}

	verdict, err := numberguess.Judge(session, &guess)
	if err != nil {
		return "", false, fmt.Errorf("failed to judge guess: %w", err)
	}

	switch verdict {
	case entity.VerdictCorrect:
		return entity.StateWon, false, nil
	case entity.VerdictTooHigh:
		t.send(textTooHigh)
	case entity.VerdictTooLow:
		t.send(textTooLow)
	}

	return entity.StateAwaitingGuess, false, nil
}

func (that *GameDialog) wonStep(session *entity.Session, t *turn) (entity.State, bool, error) {
	if session.Secret == nil {
		return "", false, apperror.ErrContractViolation
	}

	t.send(fmt.Sprintf(textWon, *session.Secret))

	return entity.StateAwaitingReplay, false, nil
}

func (that *GameDialog) replayStep(_ *entity.Session, t *turn) (entity.State, bool, error) {
	text, ok := t.consume()
	if !ok {
		t.prompt(ActivityConfirmPrompt, that.confirm.Text)
		return entity.StateAwaitingReplay, true, nil
	}

	again, ok := that.confirm.Recognize(text)
	if !ok {
		t.prompt(ActivityConfirmPrompt, that.confirm.Text)
		return entity.StateAwaitingReplay, true, nil
	}

	if again {
		return entity.StateStart, false, nil
	}

	t.send(textFarewell)

	return entity.StateEnded, false, nil
}

func (that *GameDialog) endedStep(_ *entity.Session, _ *turn) (entity.State, bool, error) {
	return entity.StateEnded, true, nil
}
