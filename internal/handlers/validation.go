package handlers

import (
	"gemstone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// bindGemInput parses, normalises and validates a gem payload.
func bindGemInput(c *fiber.Ctx) (*models.GemInput, error) {
	var in models.GemInput
	if err := c.BodyParser(&in); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	in.Normalize()
	if err := models.ValidateStruct(in); err != nil {
		return nil, err
	}
	return &in, nil
}

// bindGemQuery reads listing parameters over their defaults and validates
// them.
func bindGemQuery(c *fiber.Ctx) (models.GemQuery, error) {
	q := models.DefaultGemQuery()
	if err := c.QueryParser(&q); err != nil {
		return q, fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid query parameters")
	}
	if err := models.ValidateStruct(q); err != nil {
		return q, err
	}
	return q, nil
}
