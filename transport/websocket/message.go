package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/guessbot-backend/internal/usecase"
)

const (
	actionConnect = "connect"
	actionMessage = "message"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Text string `json:"text"`
}

type ResponsePayload struct {
	Reply *usecase.Reply `json:"reply,omitempty"`
	Error string         `json:"error,omitempty"`
}

func newResponse(action string, payload ResponsePayload) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: raw}, nil
}
