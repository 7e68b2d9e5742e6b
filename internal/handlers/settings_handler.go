package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resumate/backend/internal/models"
	"resumate/backend/internal/repositories"
)

type SettingsHandler struct {
	settingsRepo repositories.SettingsRepository
}

func NewSettingsHandler(settingsRepo repositories.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

func (h *SettingsHandler) HandleGetSettings(c *fiber.Ctx) error {
	userID := currentUserID(c)

	settings, err := h.settingsRepo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(models.SettingsResponse{})
		}
		return respondError(c, err)
	}

	return c.JSON(models.SettingsResponse{
		Provider: settings.Provider,
		APIKey:   maskKey(settings.APIKey),
		Model:    settings.Model,
	})
}

func (h *SettingsHandler) HandleUpdateSettings(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.SettingsUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	settings := &models.UserSettings{UserID: userID}
	if existing, err := h.settingsRepo.FindByUser(userID); err == nil {
		settings = existing
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return respondError(c, err)
	}

	if req.Provider != nil {
		settings.Provider = strings.ToLower(strings.TrimSpace(*req.Provider))
	}
	if req.APIKey != nil {
		settings.APIKey = strings.TrimSpace(*req.APIKey)
	}
	if req.Model != nil {
		settings.Model = strings.TrimSpace(*req.Model)
	}

	if err := h.settingsRepo.Upsert(settings); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Settings updated successfully",
	})
}

// maskKey keeps the last four characters so the UI can show which key is
// active without exposing it.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
