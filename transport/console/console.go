package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rocketscienceinc/guessbot-backend/internal/dialog"
	"github.com/rocketscienceinc/guessbot-backend/internal/usecase"
)

const conversationID = "console"

type conversationUseCase interface {
	HandleMessage(ctx context.Context, conversationID, text string) (*usecase.Reply, error)
	Resume(ctx context.Context, conversationID string) (*usecase.Reply, error)
}

// Run - plays one conversation over a line-oriented terminal until the game ends or input closes.
func Run(ctx context.Context, conversations conversationUseCase, in io.Reader, out io.Writer) error {
	reply, err := conversations.Resume(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	if err = render(out, reply.Activities); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err = ctx.Err(); err != nil {
			return nil
		}

		reply, err = conversations.HandleMessage(ctx, conversationID, scanner.Text())
		if err != nil {
			return fmt.Errorf("failed to handle input: %w", err)
		}

		if err = render(out, reply.Activities); err != nil {
			return err
		}

		if reply.Ended {
			return nil
		}
	}

	if err = scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func render(out io.Writer, activities []dialog.Activity) error {
	for _, activity := range activities {
		line := activity.Text
		if activity.IsPrompt() {
			line += " > "
		} else {
			line += "\n"
		}

		if _, err := io.WriteString(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return nil
}
