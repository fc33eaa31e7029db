package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/identity"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the fiber.Config ErrorHandler. It turns apperr kinds into
// status codes and never exposes details of 5xx failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := apperr.Message(err)

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.Is(err, apperr.ErrValidation):
		code = fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrAuthentication):
		code = fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		code = fiber.StatusNotFound
	}

	if code >= 500 {
		attrs := []any{
			"request_id", fmt.Sprint(c.Locals("requestid")),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		}
		if userID, uerr := identity.GetUserID(c); uerr == nil {
			attrs = append(attrs, "user_id", userID.String())
		}
		slog.Error("unhandled server error", attrs...)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}
	if message == "" {
		message = fiber.ErrInternalServerError.Message
		if code < 500 {
			message = "Request failed"
		}
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
