package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/guessbot-backend/internal/usecase"
)

type conversationUseCase interface {
	HandleMessage(ctx context.Context, conversationID, text string) (*usecase.Reply, error)
	Resume(ctx context.Context, conversationID string) (*usecase.Reply, error)
}

type Server struct {
	logger        *slog.Logger
	conversations conversationUseCase
	newID         func() string

	httpServer *http.Server
}

func New(logger *slog.Logger, conversations conversationUseCase, port string) *Server {
	server := &Server{
		logger:        logger.With("component", "rest"),
		conversations: conversations,
		newID:         newConversationID,
	}

	server.httpServer = &http.Server{
		Addr:         ":" + port,
		Handler:      server.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return server
}

// Handler - routes of the REST API.
func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)

	router.Get("/ping", pingHandler)

	router.Route("/api/conversations", func(r chi.Router) {
		r.Post("/", that.handleNewConversation)
		r.Post("/{conversationID}/messages", that.handleMessage)
	})

	return router
}

// Start - blocks serving HTTP until Shutdown is called.
func (that *Server) Start() error {
	if err := that.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
