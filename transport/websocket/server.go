package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/guessbot-backend/internal/usecase"
)

const sessionCookie = "user_session"

type conversationUseCase interface {
	HandleMessage(ctx context.Context, conversationID, text string) (*usecase.Reply, error)
	Resume(ctx context.Context, conversationID string) (*usecase.Reply, error)
}

type handlerFunc func(ctx context.Context, conversationID string, message *Message) (*usecase.Reply, error)

type Server struct {
	logger        *slog.Logger
	conversations conversationUseCase

	handlers   map[string]handlerFunc
	httpServer *http.Server
}

func New(logger *slog.Logger, conversations conversationUseCase, port string) *Server {
	server := &Server{
		logger:        logger.With("component", "websocket"),
		conversations: conversations,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionMessage] = server.handleMessage

	server.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ws", that.serveWS)

	return router
}

// Start - blocks serving WebSocket connections until Shutdown is called.
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

// serveWS - upgrades the connection and serves the conversation bound to the session cookie.
func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conversationID := that.setSessionCookie(w, r)
	log := that.logger.With("method", "serveWS", "conversationID", conversationID)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow()

	log.Info("WebSocket connection established")

	err = that.handleMessages(r.Context(), conn, conversationID)

	switch status := websocket.CloseStatus(err); {
	case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
		log.Info("WebSocket connection closed")
	case err != nil:
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until the connection closes.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, conversationID string) error {
	log := that.logger.With("method", "handleMessages", "conversationID", conversationID)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.send(ctx, conn, actionError, ResponsePayload{Error: "unknown action"}); err != nil {
				return err
			}
			continue
		}

		reply, err := handler(ctx, conversationID, &message)
		if err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			if err = that.send(ctx, conn, actionError, ResponsePayload{Error: "internal error"}); err != nil {
				return err
			}
			continue
		}

		if err = that.send(ctx, conn, message.Action, ResponsePayload{Reply: reply}); err != nil {
			return err
		}
	}
}

func (that *Server) handleConnect(ctx context.Context, conversationID string, _ *Message) (*usecase.Reply, error) {
	return that.conversations.Resume(ctx, conversationID)
}

func (that *Server) handleMessage(ctx context.Context, conversationID string, message *Message) (*usecase.Reply, error) {
	var payload RequestPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.conversations.HandleMessage(ctx, conversationID, payload.Text)
}

func (that *Server) send(ctx context.Context, conn *websocket.Conn, action string, payload ResponsePayload) error {
	response, err := newResponse(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = wsjson.Write(ctx, conn, response); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	return nil
}

// setSessionCookie - returns the conversation id from the session cookie, issuing a new one when missing.
func (that *Server) setSessionCookie(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	cookie = &http.Cookie{
		Name:     sessionCookie,
		Value:    uuid.NewString(),
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/ws",
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)

	that.logger.Info("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value
}
