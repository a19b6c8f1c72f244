package middleware

import (
	"errors"

	"gemstone/internal/logger"
	"gemstone/internal/repositories"
	"gemstone/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FieldError is one entry of a 422 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorHandler maps every error returned by a handler to a status code and
// a {"detail": ...} body.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ve validator.ValidationErrors
		var fe *fiber.Error

		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": fieldErrors(ve)})
		case errors.As(err, &fe):
			return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
		case errors.Is(err, repositories.ErrInvalidID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid ID"})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Gem not found"})
		case errors.Is(err, repositories.ErrUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"detail": "Database not available"})
		case errors.Is(err, services.ErrInvalidPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid password"})
		}

		log.Error("internal error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "internal server error"})
	}
}

func fieldErrors(ve validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, FieldError{Field: e.Field(), Message: validationMessage(e)})
	}
	return out
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field required"
	case "min":
		return "ensure this value has at least " + e.Param() + " characters"
	case "gte":
		return "ensure this value is greater than or equal to " + e.Param()
	case "lte":
		return "ensure this value is less than or equal to " + e.Param()
	case "oneof":
		return "value must be one of: " + e.Param()
	case "http_url":
		return "invalid or missing URL scheme"
	default:
		return "failed on the '" + e.Tag() + "' rule"
	}
}
