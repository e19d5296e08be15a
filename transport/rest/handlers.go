package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxMessageBytes = 4 << 10

type messageRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newConversationID() string {
	return uuid.NewString()
}

// handleNewConversation - opens a conversation and starts its first game.
func (that *Server) handleNewConversation(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleNewConversation")

	reply, err := that.conversations.Resume(r.Context(), that.newID())
	if err != nil {
		log.Error("failed to start conversation", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, reply)
}

func (that *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	log := that.logger.With("method", "handleMessage", "conversationID", conversationID)

	var req messageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid message"})
		return
	}

	reply, err := that.conversations.HandleMessage(r.Context(), conversationID, req.Text)
	if err != nil {
		log.Error("failed to handle message", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
