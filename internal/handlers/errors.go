package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resumate/backend/internal/repositories"
	"resumate/backend/internal/services"
)

// statusFor maps service-layer sentinel errors onto HTTP status codes. Every
// handler funnels failures through respondError so the mapping stays in one
// place.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidQuestionIndex),
		errors.Is(err, services.ErrInvalidConfiguration),
		errors.Is(err, services.ErrNoAnswersSubmitted):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUpstreamFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
