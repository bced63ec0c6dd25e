package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/pkg/errors"
	"github.com/mroshb/streetwars/pkg/logger"
)

// respondError maps application error codes onto HTTP statuses.
// Conflicts are retryable; validation and authorization failures are
// permanent rejections.
func respondError(c *fiber.Ctx, err error) error {
	code := errors.Code(err)

	status := fiber.StatusInternalServerError
	switch code {
	case errors.ErrCodeValidationFailed:
		status = fiber.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		status = fiber.StatusUnauthorized
	case errors.ErrCodeInsufficientFunds:
		status = fiber.StatusPaymentRequired
	case errors.ErrCodeForbidden:
		status = fiber.StatusForbidden
	case errors.ErrCodeNotFound:
		status = fiber.StatusNotFound
	case errors.ErrCodeConflict, errors.ErrCodeAlreadyExists:
		status = fiber.StatusConflict
	case errors.ErrCodeRateLimitExceeded:
		status = fiber.StatusTooManyRequests
	}

	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{
			"code":  errors.ErrCodeInternalError,
			"error": "internal error",
		})
	}

	message := err.Error()
	if appErr, ok := err.(*errors.AppError); ok {
		message = appErr.Message
	}
	return c.Status(status).JSON(fiber.Map{
		"code":  code,
		"error": message,
	})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New(errors.ErrCodeValidationFailed, "invalid "+name)
	}
	return uint(id), nil
}
