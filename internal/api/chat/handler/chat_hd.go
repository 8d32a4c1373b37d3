package chatHandler

import (
	"ReminderBot/internal/api/chat"
	chatService "ReminderBot/internal/api/chat/service"
	contextPkg "ReminderBot/pkg/context"
	"ReminderBot/pkg/handlerUtil"
	"ReminderBot/pkg/log"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

const maxMessageBytes = 1024

func (h *ChatHandler) handleChatWebSocket(c *websocket.Conn) {
	h.log.Info("Chat client connected")
	defer h.log.Info("Chat client disconnected")

	// The session's timer callbacks write to the connection off the read
	// loop, so frame writes are serialized.
	var writeMu sync.Mutex
	send := func(text string) {
		writeMu.Lock()
		defer writeMu.Unlock()

		if err := c.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
			h.log.Errorf("Error writing chat frame: %v", err)
		}
	}

	session := h.chatService.NewSession(send)
	defer session.Close()

	h.log.WithFields(log.Fields{"session_id": session.ID()}).Info("Chat session opened")

	send(chatService.Greeting)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Errorf("Chat WebSocket error: %v", err)
			} else {
				h.log.WithFields(log.Fields{"session_id": session.ID()}).Info("Chat WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.TextMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		send(session.HandleMessage(string(message)))
	}
}

func (h *ChatHandler) ParseUtterance(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing parse request")

	var req chat.ParseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if strings.TrimSpace(req.Message) == "" {
		return errHandler.Handle(ctx, requestID, chat.ErrEmptyMessage, ctx.Path(), "parse_utterance")
	}
	if len(req.Message) > maxMessageBytes {
		return errHandler.Handle(ctx, requestID, chat.ErrMessageTooLong, ctx.Path(), "parse_utterance")
	}

	command := h.chatService.ParseUtterance(c, req.Message)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, chat.ParseResponse{
		Message: req.Message,
		Command: command,
		Kind:    command.Kind.String(),
	})
}
