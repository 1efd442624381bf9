package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessrules/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeMove     MessageType = "move"
	MessageTypeNavigate MessageType = "navigate"
	MessageTypeRestart  MessageType = "restart"
	MessageTypeComputer MessageType = "computer"

	// server -> client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	From model.Position `json:"from"`
	To   model.Position `json:"to"`
}

type NavigatePayload struct {
	Index int `json:"index"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
