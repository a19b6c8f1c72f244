package main

import (
	"gemstone/internal/config"
	"gemstone/internal/handlers"
	"gemstone/internal/logger"
	"gemstone/internal/middleware"
	"gemstone/internal/repositories"
	"gemstone/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// NewApp wires services and handlers over repo. events may be nil.
func NewApp(cfg *config.Config, log *logger.Logger, repo repositories.GemRepository, events services.EventPublisher) (*fiber.App, error) {
	adminService, err := services.NewAdminService(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	opts := []services.GemServiceOption{services.WithLogger(log)}
	if events != nil {
		opts = append(opts, services.WithEventPublisher(events))
	}
	gemService := services.NewGemService(repo, opts...)

	app := fiber.New(fiber.Config{
		AppName:      "gemstone",
		ErrorHandler: middleware.ErrorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "*",
	}))

	// --- Routes ---
	handlers.NewSystemHandler(gemService, cfg.HasDatabase()).RegisterRoutes(app)

	api := app.Group("/api")
	handlers.NewAdminHandler(adminService).RegisterRoutes(api)
	handlers.NewGemHandler(gemService).RegisterRoutes(api)

	return app, nil
}
