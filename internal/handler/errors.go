package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"cinemood/internal/models"
	"cinemood/internal/service"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// messageFor returns the client-facing text for err. Internal failures get
// fallback instead of the wrapped cause.
func messageFor(err error, fallback string) string {
	switch {
	case errors.Is(err, service.ErrValidation):
		return err.Error()
	case errors.Is(err, service.ErrNotFound):
		return "title not found"
	case errors.Is(err, service.ErrNotConfigured):
		return service.ErrNotConfigured.Error()
	default:
		return fallback
	}
}

// fail writes the {ok:false, error} envelope used by the CineMood routes.
func fail(c fiber.Ctx, err error, fallback string, attrs ...any) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error(fallback, append(attrs, "error", err)...)
	}
	return c.Status(status).JSON(models.EnvelopeError{Error: messageFor(err, fallback)})
}

// failBare writes the {error} body used by the chat routes.
func failBare(c fiber.Ctx, err error, fallback string, attrs ...any) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error(fallback, append(attrs, "error", err)...)
	}
	return c.Status(status).JSON(models.ErrorResponse{Error: messageFor(err, fallback)})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.EnvelopeError{Error: msg})
}
