package handlers

import (
	"gemstone/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GemHandler handles HTTP requests for gems.
type GemHandler struct {
	service *services.GemService
}

// NewGemHandler creates a new GemHandler.
func NewGemHandler(service *services.GemService) *GemHandler {
	return &GemHandler{
		service: service,
	}
}

// RegisterRoutes registers the gem and seed routes.
func (h *GemHandler) RegisterRoutes(router fiber.Router) {
	gemRoutes := router.Group("/gems")
	gemRoutes.Get("/", h.HandleListGems)
	gemRoutes.Get("/:id", h.HandleGetGem)
	gemRoutes.Post("/", h.HandleCreateGem)
	gemRoutes.Put("/:id", h.HandleUpdateGem)
	gemRoutes.Delete("/:id", h.HandleDeleteGem)

	router.Post("/seed", h.HandleSeed)
}

// HandleListGems returns one page of gems with the filtered total.
func (h *GemHandler) HandleListGems(c *fiber.Ctx) error {
	q, err := bindGemQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListGems(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetGem retrieves a single gem by its ID.
func (h *GemHandler) HandleGetGem(c *fiber.Ctx) error {
	gem, err := h.service.GetGem(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(gem)
}

// HandleCreateGem creates a new gem.
func (h *GemHandler) HandleCreateGem(c *fiber.Ctx) error {
	in, err := bindGemInput(c)
	if err != nil {
		return err
	}
	gem, err := h.service.CreateGem(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(gem)
}

// HandleUpdateGem replaces every mutable field of a gem.
func (h *GemHandler) HandleUpdateGem(c *fiber.Ctx) error {
	in, err := bindGemInput(c)
	if err != nil {
		return err
	}
	gem, err := h.service.UpdateGem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(gem)
}

// HandleDeleteGem removes a gem.
func (h *GemHandler) HandleDeleteGem(c *fiber.Ctx) error {
	if err := h.service.DeleteGem(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleSeed loads the sample gems into an empty database.
func (h *GemHandler) HandleSeed(c *fiber.Ctx) error {
	res, err := h.service.Seed(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}
