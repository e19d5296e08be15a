package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/guessbot-backend/internal"
	"github.com/rocketscienceinc/guessbot-backend/internal/config"
)

// main - is the entry point of the application. It parses the command line and runs the chosen command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "guessbot",
		Usage: "Guess-the-number chat bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "./config.yml",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the bot over REST and WebSocket",
				Action: runServe,
			},
			{
				Name:   "play",
				Usage:  "Play one game in the terminal",
				Action: runPlay,
			},
		},
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	conf, err := initConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	return app.RunApp(ctx, initLogger(conf), conf)
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	conf, err := initConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	// keep the terminal free of log lines unless asked for
	if conf.LogLevel != "debug" {
		conf.LogLevel = "error"
	}

	return app.RunConsole(ctx, initLogger(conf), os.Stdin, os.Stdout)
}

// initialize config, falling back to environment and defaults when the file is absent.
func initConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.LoadEnv()
	}

	return config.MustLoad(path), nil
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
