package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/salescoach/backend/internal/scenario"
)

type ScenarioHandler struct {
	catalogue *scenario.Catalogue
}

func NewScenarioHandler(catalogue *scenario.Catalogue) *ScenarioHandler {
	return &ScenarioHandler{catalogue: catalogue}
}

func (h *ScenarioHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"scenarios": h.catalogue.List(),
	})
}

func (h *ScenarioHandler) Get(c *fiber.Ctx) error {
	sc, err := h.catalogue.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, scenario.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(sc)
}
