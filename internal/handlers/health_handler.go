package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"resumate/backend/internal/services"
)

type HealthHandler struct {
	db               *gorm.DB
	cache            *services.AnalysisCache
	interviewService services.InterviewService
}

func NewHealthHandler(db *gorm.DB, cache *services.AnalysisCache, interviewService services.InterviewService) *HealthHandler {
	return &HealthHandler{
		db:               db,
		cache:            cache,
		interviewService: interviewService,
	}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "error"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error"
	}

	status := "healthy"
	code := fiber.StatusOK
	if dbStatus != "ok" {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":             status,
		"database":           dbStatus,
		"analysis_cache_len": h.cache.Len(),
		"active_interviews":  h.interviewService.Len(),
		"time":               time.Now().UTC(),
	})
}
