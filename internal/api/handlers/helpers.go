package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postbridge/internal/api/middleware"
	"github.com/maheshrc27/postbridge/internal/publisher"
	"github.com/maheshrc27/postbridge/internal/service"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := c.Locals(middleware.UserIDKey).(int64)
	return userID
}

// errorStatus maps service and publisher errors onto HTTP statuses.
func errorStatus(err error) (int, string) {
	var (
		unsupportedPlatform  *publisher.UnsupportedPlatformError
		unsupportedOperation *publisher.UnsupportedOperationError
		invalidCredentials   *publisher.InvalidCredentialsError
		platformErr          *publisher.PlatformError
	)

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrPostNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrTooManyApiKeys),
		errors.Is(err, service.ErrUnknownApiKey),
		errors.As(err, &unsupportedPlatform),
		errors.As(err, &unsupportedOperation),
		errors.As(err, &invalidCredentials):
		return fiber.StatusBadRequest, err.Error()
	case errors.As(err, &platformErr):
		return fiber.StatusInternalServerError, platformErr.Error()
	default:
		slog.Error(err.Error())
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, msg := errorStatus(err)
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}
