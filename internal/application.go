package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/guessbot-backend/internal/config"
	"github.com/rocketscienceinc/guessbot-backend/internal/dialog"
	"github.com/rocketscienceinc/guessbot-backend/internal/numberguess"
	"github.com/rocketscienceinc/guessbot-backend/internal/repository"
	"github.com/rocketscienceinc/guessbot-backend/internal/repository/storage"
	"github.com/rocketscienceinc/guessbot-backend/internal/usecase"
	"github.com/rocketscienceinc/guessbot-backend/transport/console"
	"github.com/rocketscienceinc/guessbot-backend/transport/rest"
	"github.com/rocketscienceinc/guessbot-backend/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

type server interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// RunApp - serves the REST and WebSocket transports until ctx is canceled.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	sessionRepo, closeStore, err := newSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			log.Error("could not close session storage", "error", closeErr)
		}
	}()

	conversations := usecase.NewConversationManager(logger, sessionRepo,
		dialog.NewGameDialog(logger, numberguess.NewRandomSource()))

	servers := map[string]server{
		"HTTP":      rest.New(logger, conversations, conf.HTTPPort),
		"WebSocket": websocket.New(logger, conversations, conf.SocketPort),
	}

	errCh := make(chan error, len(servers))
	for name, srv := range servers {
		go func() {
			log.Info("Starting server", "server", name)
			if srvErr := srv.Start(); srvErr != nil {
				errCh <- fmt.Errorf("%s server error: %w", name, srvErr)
			}
		}()
	}

	select {
	case err = <-errCh:
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for name, srv := range servers {
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error("could not shutdown server", "server", name, "error", shutdownErr)
		}
	}

	return err
}

// RunConsole - plays a single game over in and out with an in-memory session.
func RunConsole(ctx context.Context, logger *slog.Logger, in io.Reader, out io.Writer) error {
	conversations := usecase.NewConversationManager(logger,
		repository.NewMemorySessionRepository(0),
		dialog.NewGameDialog(logger, numberguess.NewRandomSource()))

	return console.Run(ctx, conversations, in, out)
}

func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	ttl := conf.Storage.SessionTTL

	switch conf.Storage.Driver {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewSessionRepository(redisStorage.Connection, ttl), redisStorage.Close, nil

	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteSessionRepository(sqliteStorage.Connection, ttl), sqliteStorage.Close, nil

	case config.StorageMemory:
		return repository.NewMemorySessionRepository(ttl), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
