package handlers

import (
	"gemstone/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	maxDiagnosticCollections = 10
	maxDiagnosticError       = 50
)

// SystemHandler serves the root banner and the connectivity check.
type SystemHandler struct {
	service     *services.GemService
	databaseSet bool
}

// NewSystemHandler creates a SystemHandler. databaseSet reports whether a
// connection string was configured, whether or not it was usable.
func NewSystemHandler(service *services.GemService, databaseSet bool) *SystemHandler {
	return &SystemHandler{service: service, databaseSet: databaseSet}
}

// RegisterRoutes registers the root and diagnostic routes.
func (h *SystemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/test", h.HandleDiagnostics)
}

// HandleRoot returns the liveness banner.
func (h *SystemHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Gemstone Store Backend Running"})
}

// HandleDiagnostics always answers 200; store failures are reported in the
// body.
func (h *SystemHandler) HandleDiagnostics(c *fiber.Ctx) error {
	resp := fiber.Map{
		"backend":           "Running",
		"database":          "Not Available",
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}
	if !h.service.DatabaseAvailable() {
		if h.databaseSet {
			// configured, but startup fell back to the sample catalog
			resp["database"] = "Available but not initialized"
			resp["database_url"] = "Set"
		}
		return c.JSON(resp)
	}

	resp["database"] = "Available"
	resp["connection_status"] = "Connected"
	if h.databaseSet {
		resp["database_url"] = "Set"
	} else {
		resp["database_url"] = "Not Set"
	}

	info, err := h.service.StoreInfo(c.UserContext())
	if info != nil {
		resp["database_name"] = info.Name
	}
	if err != nil {
		resp["database"] = "Connected but Error: " + truncate(err.Error(), maxDiagnosticError)
		return c.JSON(resp)
	}

	collections := info.Collections
	if len(collections) > maxDiagnosticCollections {
		collections = collections[:maxDiagnosticCollections]
	}
	if collections != nil {
		resp["collections"] = collections
	}
	resp["database"] = "Connected & Working"
	return c.JSON(resp)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
