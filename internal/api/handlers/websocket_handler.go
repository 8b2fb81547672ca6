package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/conversation"
	"github.com/salescoach/backend/pkg/logger"
)

// WebSocketHandler runs a live practice session over one socket: the client
// sends salesperson messages, receives persona replies, and may end the
// session to receive the evaluation on the same connection.
type WebSocketHandler struct {
	manager *conversation.Manager
}

func NewWebSocketHandler(manager *conversation.Manager) *WebSocketHandler {
	return &WebSocketHandler{manager: manager}
}

func (h *WebSocketHandler) HandleConversation(c *websocket.Conn) {
	conversationID := c.Params("id")
	logger.Info("WebSocket session opened", zap.String("conversation_id", conversationID))

	defer func() {
		c.Close()
		logger.Info("WebSocket session closed", zap.String("conversation_id", conversationID))
	}()

	for {
		var msg struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}

		if err := c.ReadJSON(&msg); err != nil {
			logger.Debug("WebSocket read ended", zap.Error(err))
			return
		}

		switch msg.Type {
		case "message":
			reply, err := h.manager.PostMessage(context.Background(), conversationID, msg.Content)
			if err != nil {
				h.sendError(c, err)
				continue
			}
			c.WriteJSON(map[string]interface{}{
				"type":    "reply",
				"message": reply,
			})

		case "end":
			result, err := h.manager.End(context.Background(), conversationID)
			if err != nil {
				h.sendError(c, err)
				continue
			}
			c.WriteJSON(map[string]interface{}{
				"type":       "evaluation",
				"evaluation": result,
			})
			return

		default:
			h.sendError(c, errors.New("unknown message type"))
		}
	}
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, err error) {
	c.WriteJSON(map[string]interface{}{
		"type":  "error",
		"error": err.Error(),
	})
}
