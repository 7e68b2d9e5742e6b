package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumate/backend/internal/models"
	"resumate/backend/internal/repositories"
	"resumate/backend/internal/services"
)

// minResumeLength rejects uploads whose extracted text is too short to be a
// real resume (blank PDFs, scans with no text layer).
const minResumeLength = 50

const previewLength = 500

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	extractor      services.TextExtractor
	analyzer       services.AnalyzerService
	maxFileSize    int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	extractor services.TextExtractor,
	analyzer services.AnalyzerService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		extractor:      extractor,
		analyzer:       analyzer,
		maxFileSize:    maxFileSize,
	}
}

func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	userID := currentUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no file uploaded; send the resume as multipart field 'file'",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return respondError(c, err)
	}

	text, err := h.extractor.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return respondError(c, err)
	}

	if len(text) < minResumeLength {
		h.storageService.DeleteFile(filename)
		return respondError(c, fmt.Errorf(
			"%w: extracted text too short (%d chars); the file does not look like a resume",
			services.ErrValidation, len(text)))
	}

	resume, created, err := h.resumeRepo.CreateOrGet(&models.Resume{
		UserID:      userID,
		ContentHash: services.ContentHash(text),
		Filename:    file.Filename,
		Content:     text,
	})
	if err != nil {
		h.storageService.DeleteFile(filename)
		return respondError(c, err)
	}

	message := "Resume uploaded successfully"
	if !created {
		// Same user, same text: reuse the stored record and drop the copy.
		h.storageService.DeleteFile(filename)
		message = "Resume already uploaded; returning existing record"
	} else {
		// Index for Q&A retrieval. Failures only degrade /resume/ask to
		// full-text mode, so they are logged and swallowed.
		go func(resumeID, content string) {
			if err := h.analyzer.IndexResume(context.Background(), resumeID, content); err != nil {
				log.Printf("⚠️  Failed to index resume %s: %v\n", resumeID, err)
			}
		}(resume.ID.String(), text)
	}

	preview := text
	if len(preview) > previewLength {
		preview = preview[:previewLength]
	}

	return c.Status(fiber.StatusCreated).JSON(models.ResumeUploadResponse{
		Message:     message,
		ResumeID:    resume.ID.String(),
		TextPreview: preview,
	})
}

func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	userID := currentUserID(c)

	resumes, err := h.resumeRepo.ListByUser(userID)
	if err != nil {
		return respondError(c, err)
	}

	infos := make([]models.ResumeInfo, 0, len(resumes))
	for _, resume := range resumes {
		infos = append(infos, models.ResumeInfo{
			ID:          resume.ID.String(),
			Filename:    resume.Filename,
			ContentHash: resume.ContentHash,
			CreatedAt:   resume.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"resumes": infos,
	})
}

func (h *ResumeHandler) HandleAnalyze(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	resume, err := h.resolveResume(userID, req.ResumeID)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.analyzer.Analyze(c.Context(), userID, resume, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

func (h *ResumeHandler) HandleImprove(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.ImproveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	resume, err := h.resolveResume(userID, req.ResumeID)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.analyzer.SuggestImprovements(c.Context(), userID, resume.Content, req.FocusAreas)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

func (h *ResumeHandler) HandleAsk(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	resume, err := h.resolveResume(userID, req.ResumeID)
	if err != nil {
		return respondError(c, err)
	}

	answer, err := h.analyzer.AskQuestion(c.Context(), userID, resume, req.Question, req.ChatHistory)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.AskResponse{
		Answer:      answer,
		ContextUsed: true,
	})
}

// resolveResume loads the resume named in the request, or the user's most
// recent upload when no id is given.
func (h *ResumeHandler) resolveResume(userID uint, resumeID string) (*models.Resume, error) {
	if resumeID == "" {
		return h.resumeRepo.FindLatest(userID)
	}

	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resume_id %q", services.ErrValidation, resumeID)
	}

	return h.resumeRepo.FindByID(userID, id)
}
