package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/aldenpark/chessmate-backend/internal/service"
	"github.com/aldenpark/chessmate-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	log         *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, log *zap.Logger) *WebSocketController {
	return &WebSocketController{gameService: gameService, log: log}
}

// HandleGameConnection runs the read loop for one game socket. The
// connection is registered with the session so it receives state
// broadcasts, and unregistered when the loop ends.
func (wsc *WebSocketController) HandleGameConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	log := wsc.log.With(zap.String("game_id", gameID), zap.String("player_id", playerID))

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warn("register connection", zap.Error(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("read loop ended", zap.Error(err))
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug("malformed message", zap.Error(err))
			wsc.sendError(c, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req service.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, req)

	case ws.MessageTypePromotion:
		var req struct {
			Piece string `json:"piece"`
		}
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		return wsc.gameService.CompletePromotion(gameID, playerID, req.Piece)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking parks the socket until matchmaking pairs this
// player, then delivers one matchFound message and closes.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)
	log := wsc.log.With(zap.String("player_id", playerID))

	eventCh := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, eventCh)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID)

	payload, ok := <-eventCh
	if !ok {
		// Replaced by a newer connection for the same player.
		return
	}
	if err := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeMatchFound,
		Payload: json.RawMessage(payload),
	}); err != nil {
		log.Warn("deliver match event", zap.Error(err))
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, err := json.Marshal(ws.ErrorPayload{Message: errorMsg})
	if err != nil {
		return
	}
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	})
}
