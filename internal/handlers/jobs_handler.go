package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resumate/backend/internal/models"
	"resumate/backend/internal/services"
)

type JobsHandler struct {
	jobSearch *services.JobSearchService
}

func NewJobsHandler(jobSearch *services.JobSearchService) *JobsHandler {
	return &JobsHandler{jobSearch: jobSearch}
}

func (h *JobsHandler) HandleSearch(c *fiber.Ctx) error {
	var req models.JobSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if strings.TrimSpace(req.Query) == "" {
		return respondError(c, fmt.Errorf("%w: query is required", services.ErrValidation))
	}

	listings, err := h.jobSearch.Search(c.Context(), c.Query("platform"), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.JobSearchResponse{
		Jobs:       listings,
		TotalFound: len(listings),
	})
}
