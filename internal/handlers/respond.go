package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nearhood/nearhood-backend/internal/apperr"
)

// respondError maps application errors onto the structured error body
// shared by every endpoint: {success, error_code, message}.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrInvalidOrExpiredOtp),
		errors.Is(err, apperr.ErrMissingRegistrationFields),
		errors.Is(err, apperr.ErrValidationError):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	}

	return c.Status(status).JSON(fiber.Map{
		"success":    false,
		"error_code": apperr.Code(err),
		"message":    message,
	})
}
