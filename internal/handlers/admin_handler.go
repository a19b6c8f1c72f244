package handlers

import (
	"gemstone/internal/models"
	"gemstone/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin login.
type AdminHandler struct {
	service *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Post("/login", h.HandleLogin)
}

// LoginRequest represents the request body for login. An empty password is
// a wrong password; a missing one is a validation error.
type LoginRequest struct {
	Password *string `json:"password" validate:"required"`
}

// HandleLogin returns the admin token for the right password.
func (h *AdminHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := models.ValidateStruct(req); err != nil {
		return err
	}

	token, err := h.service.Login(*req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token})
}
