package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"resumate/backend/internal/models"
	"resumate/backend/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	analyzer         services.AnalyzerService
	resumeResolver   *ResumeHandler
}

func NewInterviewHandler(
	interviewService services.InterviewService,
	analyzer services.AnalyzerService,
	resumeHandler *ResumeHandler,
) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		analyzer:         analyzer,
		resumeResolver:   resumeHandler,
	}
}

func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.InterviewStartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.NumQuestions == 0 {
		req.NumQuestions = 5
	}
	if err := h.interviewService.ValidateQuestionCount(req.NumQuestions); err != nil {
		return respondError(c, err)
	}
	if len(req.QuestionTypes) == 0 {
		req.QuestionTypes = []string{"technical", "behavioral"}
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	resume, err := h.resumeResolver.resolveResume(userID, req.ResumeID)
	if err != nil {
		return respondError(c, err)
	}

	questions, err := h.analyzer.GenerateQuestions(
		c.Context(), userID, resume.Content, req.QuestionTypes, req.Difficulty, req.NumQuestions)
	if err != nil {
		return respondError(c, err)
	}
	if len(questions) == 0 {
		// The request was fine; the model produced nothing usable.
		return respondError(c, fmt.Errorf("%w: no interview questions generated", services.ErrUpstreamFailure))
	}

	maxDuration := time.Duration(req.MaxDurationMinutes) * time.Minute

	session, err := h.interviewService.Start(
		userID, resume.Content, questions, req.QuestionTypes, req.Difficulty, maxDuration)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]models.InterviewQuestion, len(session.Questions))
	for i, question := range session.Questions {
		out[i] = models.InterviewQuestion{
			QuestionID:   i,
			QuestionText: question,
			QuestionType: req.QuestionTypes[i%len(req.QuestionTypes)],
		}
	}

	return c.Status(fiber.StatusCreated).JSON(models.InterviewStartResponse{
		InterviewID:        session.ID,
		Questions:          out,
		MaxDurationSeconds: int(maxDuration.Seconds()),
		StartTime:          session.StartTime,
	})
}

func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	interviewID := c.Query("interview_id")
	if interviewID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "interview_id query parameter is required",
		})
	}

	var req models.AnswerSubmission
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	score, nextID, err := h.interviewService.SubmitAnswer(
		c.Context(), interviewID, req.QuestionID, req.Transcript)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.AnswerSubmissionResponse{
		QuestionID:     req.QuestionID,
		Scores:         *score,
		NextQuestionID: nextID,
	})
}

func (h *InterviewHandler) HandleSummary(c *fiber.Ctx) error {
	interviewID := c.Params("interview_id")

	summary, err := h.interviewService.Summarize(interviewID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(summary)
}
