package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/conversation"
	"github.com/salescoach/backend/internal/scenario"
	"github.com/salescoach/backend/internal/storage/sqlite"
	"github.com/salescoach/backend/pkg/logger"
)

type ConversationHandler struct {
	manager *conversation.Manager
	archive *sqlite.Client
}

func NewConversationHandler(manager *conversation.Manager, archive *sqlite.Client) *ConversationHandler {
	return &ConversationHandler{manager: manager, archive: archive}
}

func (h *ConversationHandler) Start(c *fiber.Ctx) error {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.ScenarioID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scenario_id is required",
		})
	}

	conv, err := h.manager.Start(c.Context(), req.ScenarioID)
	if err != nil {
		return conversationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(conv)
}

func (h *ConversationHandler) PostMessage(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "content is required",
		})
	}

	reply, err := h.manager.PostMessage(c.Context(), c.Params("id"), req.Content)
	if err != nil {
		return conversationError(c, err)
	}

	return c.JSON(reply)
}

func (h *ConversationHandler) End(c *fiber.Ctx) error {
	result, err := h.manager.End(c.Context(), c.Params("id"))
	if err != nil {
		return conversationError(c, err)
	}

	return c.JSON(result)
}

// Get returns the live conversation, falling back to the archive for
// sessions that predate this process.
func (h *ConversationHandler) Get(c *fiber.Ctx) error {
	conv, err := h.manager.Get(c.Params("id"))
	if err == nil {
		return c.JSON(conv)
	}
	if !errors.Is(err, conversation.ErrNotFound) || h.archive == nil {
		return conversationError(c, err)
	}

	rec, msgs, archErr := h.archive.GetConversation(c.Context(), c.Params("id"))
	if archErr != nil {
		if errors.Is(archErr, sqlite.ErrNotArchived) {
			return conversationError(c, err)
		}
		return conversationError(c, archErr)
	}

	return c.JSON(fiber.Map{
		"conversation": rec,
		"messages":     msgs,
	})
}

func (h *ConversationHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"conversations": h.manager.List(),
	})
}

func conversationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, conversation.ErrNotFound), errors.Is(err, scenario.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, conversation.ErrEnded):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Error("Conversation request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
