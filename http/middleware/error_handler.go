package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jeewifi-backend/core"
	"jeewifi-backend/logger"
)

// ErrorHandler maps engine error kinds to HTTP statuses. Unknown voucher
// codes and unknown users both come back as a generic invalid-credentials
// message so callers cannot probe what exists.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, core.ErrValidation):
		code = fiber.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		code = fiber.StatusNotFound
		message = "Invalid code or credentials"
	case errors.Is(err, core.ErrInvalidCredentials):
		code = fiber.StatusUnauthorized
		message = "Invalid code or credentials"
	case errors.Is(err, core.ErrInvalidOtp):
		code = fiber.StatusUnauthorized
		message = "Code expired or incorrect"
	case errors.Is(err, core.ErrBlocked):
		code = fiber.StatusForbidden
	case errors.Is(err, core.ErrExpired):
		code = fiber.StatusGone
	case errors.Is(err, core.ErrDeviceLimitExceeded):
		code = fiber.StatusConflict
	case errors.Is(err, core.ErrAlreadyConnected):
		code = fiber.StatusConflict
	case errors.Is(err, core.ErrUnavailable):
		code = fiber.StatusServiceUnavailable
	default:
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		} else {
			logger.Logger.WithError(err).Error("Unhandled error occurred")
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
