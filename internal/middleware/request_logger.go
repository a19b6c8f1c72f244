package middleware

import (
	"time"

	"gemstone/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request. Handler errors are rendered
// here first so the logged status is the one the client receives.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info("http",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"dur", time.Since(start).String(),
		)
		return nil
	}
}
