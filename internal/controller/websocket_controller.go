package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established.
// The connection watches one game until the client goes away.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")

	connID, err := wsc.gameService.RegisterConnection(gameID, c)
	if err != nil {
		log.Warnf("game %s: failed to register connection: %v", gameID, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error on %s: %v", gameID, connID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, connID, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			wsc.gameService.SendError(gameID, connID, err)
		}
	}
}

// handleMessage applies one client message. Successful changes reach every
// watcher through the service's broadcast.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.MakeMove(gameID, move.From, move.To)
		return err

	case ws.MessageTypeNavigate:
		var nav ws.NavigatePayload
		if err := json.Unmarshal(msg.Payload, &nav); err != nil {
			return err
		}
		_, err := wsc.gameService.Navigate(gameID, nav.Index)
		return err

	case ws.MessageTypeRestart:
		_, err := wsc.gameService.Restart(gameID)
		return err

	case ws.MessageTypeComputer:
		_, err := wsc.gameService.ComputerMove(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
