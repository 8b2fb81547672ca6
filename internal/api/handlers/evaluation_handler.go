package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/evaluation"
	"github.com/salescoach/backend/internal/methodology"
	"github.com/salescoach/backend/internal/storage/sqlite"
	"github.com/salescoach/backend/internal/transcript"
	"github.com/salescoach/backend/pkg/logger"
)

type EvaluationHandler struct {
	service  *evaluation.Service
	registry *methodology.Registry
	db       *sqlite.Client
}

func NewEvaluationHandler(service *evaluation.Service, registry *methodology.Registry, db *sqlite.Client) *EvaluationHandler {
	return &EvaluationHandler{
		service:  service,
		registry: registry,
		db:       db,
	}
}

// Evaluate scores a pasted transcript against a named methodology.
func (h *EvaluationHandler) Evaluate(c *fiber.Ctx) error {
	var req struct {
		Transcript  string `json:"transcript"`
		Methodology string `json:"methodology"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Transcript == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "transcript is required",
		})
	}
	if req.Methodology == "" {
		req.Methodology = "spin"
	}

	result, err := h.service.EvaluateTranscript(c.Context(), req.Transcript, req.Methodology)
	if err != nil {
		switch {
		case errors.Is(err, methodology.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, transcript.ErrMalformed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			logger.Error("Transcript evaluation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to evaluate transcript",
			})
		}
	}

	return c.JSON(result)
}

// ListMethodologies enumerates the registered frameworks with their
// dimensions, weights and rubric text.
func (h *EvaluationHandler) ListMethodologies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"methodologies": h.registry.List(),
	})
}

// History returns recently archived evaluation results.
func (h *EvaluationHandler) History(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	if sourceID := c.Query("source_id"); sourceID != "" {
		records, err := h.db.EvaluationsBySource(c.Context(), sourceID)
		if err != nil {
			logger.Error("Failed to load evaluation history", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load history",
			})
		}
		return c.JSON(fiber.Map{"evaluations": records})
	}

	records, err := h.db.ListEvaluations(c.Context(), limit)
	if err != nil {
		logger.Error("Failed to load evaluation history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load history",
		})
	}

	return c.JSON(fiber.Map{"evaluations": records})
}
