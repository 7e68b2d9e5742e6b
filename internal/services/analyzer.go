package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"resumate/backend/internal/models"
	"resumate/backend/internal/repositories"
)

// AnalyzerService is the LLM-backed collaborator behind analysis,
// improvement suggestions, resume Q&A, interview question generation and
// answer scoring. Upstream responses are parsed into typed results and
// validated before anything downstream sees them.
type AnalyzerService interface {
	Analyze(ctx context.Context, userID uint, resume *models.Resume, req *models.AnalyzeRequest) (*models.AnalysisResult, error)
	SuggestImprovements(ctx context.Context, userID uint, resumeText string, focusAreas []string) (*models.ImprovementResult, error)
	AskQuestion(ctx context.Context, userID uint, resume *models.Resume, question string, history []models.ChatMessage) (string, error)
	GenerateQuestions(ctx context.Context, userID uint, resumeText string, questionTypes []string, difficulty string, count int) ([]string, error)
	ScoreAnswer(ctx context.Context, userID uint, question, answer string) (*models.AnswerScore, error)
	IndexResume(ctx context.Context, resumeID, text string) error
}

type analyzerService struct {
	cache        *AnalysisCache
	factory      *LLMFactory
	settingsRepo repositories.SettingsRepository
	qdrant       QdrantService
	chunker      TextChunker
	embedder     Embedder
	prompts      *PromptBuilder
	maxRetries   int
}

func NewAnalyzerService(
	cache *AnalysisCache,
	factory *LLMFactory,
	settingsRepo repositories.SettingsRepository,
	qdrant QdrantService,
	maxRetries int,
) AnalyzerService {
	return &analyzerService{
		cache:        cache,
		factory:      factory,
		settingsRepo: settingsRepo,
		qdrant:       qdrant,
		chunker:      NewTextChunker(),
		embedder:     factory.Embedder(),
		prompts:      NewPromptBuilder(),
		maxRetries:   maxRetries,
	}
}

// clientFor resolves the LLM client from the user's stored settings,
// falling back to environment defaults.
func (a *analyzerService) clientFor(userID uint) (LLMClient, error) {
	var provider, apiKey, model string
	if a.settingsRepo != nil {
		settings, err := a.settingsRepo.FindByUser(userID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		if settings != nil {
			provider = settings.Provider
			apiKey = settings.APIKey
			model = settings.Model
		}
	}
	return a.factory.ClientFor(provider, apiKey, model)
}

// defaultCutoffScore applies when a request leaves the threshold unset.
const defaultCutoffScore = 75

// Analyze implements AnalyzerService. The cache is consulted first under the
// full composite key; a store failure is logged and the fresh result is
// returned anyway.
func (a *analyzerService) Analyze(ctx context.Context, userID uint, resume *models.Resume, req *models.AnalyzeRequest) (*models.AnalysisResult, error) {
	if strings.TrimSpace(req.Role) == "" {
		return nil, fmt.Errorf("%w: role is required", ErrValidation)
	}

	cutoff := req.CutoffScore
	if cutoff < 0 || cutoff > 100 {
		return nil, fmt.Errorf("%w: cutoff_score %.1f out of range [0, 100]", ErrInvalidConfiguration, cutoff)
	}
	if cutoff == 0 {
		cutoff = defaultCutoffScore
	}

	client, err := a.clientFor(userID)
	if err != nil {
		return nil, err
	}

	intensity := IntensityFull
	if req.Quick {
		intensity = "quick"
	}
	jdHash := ContentHash(req.Role + "\n" + req.JDText + "\n" + strings.Join(req.CustomSkills, ","))

	if cached := a.cache.Lookup(userID, resume.ContentHash, jdHash, client.Provider(), client.Model(), intensity); cached != nil {
		log.Printf("💾 Analysis cache hit for user %d resume %s\n", userID, resume.ID)
		a.cache.SetLatest(userID, resume.Content, cached)
		// The threshold is a per-request filter, not part of the cached
		// analysis, so it is applied to a copy.
		out := *cached
		out.Role = req.Role
		out.CutoffScore = cutoff
		return &out, nil
	}

	prompt := a.prompts.BuildAnalysisPrompt(resume.Content, req.Role, req.JDText, req.CustomSkills, req.Quick)
	response, err := CompleteWithRetry(ctx, client, prompt, 0.3, a.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	var result models.AnalysisResult
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("%w: malformed analysis response: %v", ErrValidation, err)
	}
	if result.OverallScore < 0 || result.OverallScore > 100 {
		return nil, fmt.Errorf("%w: overall_score %.1f out of range", ErrValidation, result.OverallScore)
	}
	result.Role = req.Role
	result.CutoffScore = cutoff
	result.ResumeHash = resume.ContentHash

	if err := a.cache.Store(userID, resume.ContentHash, jdHash, client.Provider(), client.Model(), intensity, &result); err != nil {
		// Cache failure must not fail the analysis.
		log.Printf("⚠️  Failed to cache analysis: %v\n", err)
	}
	a.cache.SetLatest(userID, resume.Content, &result)

	return &result, nil
}

// SuggestImprovements implements AnalyzerService. The latest analysis memo
// is folded into the prompt when it covers the same resume text.
func (a *analyzerService) SuggestImprovements(ctx context.Context, userID uint, resumeText string, focusAreas []string) (*models.ImprovementResult, error) {
	client, err := a.clientFor(userID)
	if err != nil {
		return nil, err
	}

	var analysis *models.AnalysisResult
	if latestText, latestResult, ok := a.cache.Latest(userID); ok && latestText == resumeText {
		analysis = latestResult
	}

	prompt := a.prompts.BuildImprovementPrompt(resumeText, focusAreas, analysis)
	response, err := CompleteWithRetry(ctx, client, prompt, 0.5, a.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("improvement generation failed: %w", err)
	}

	var result models.ImprovementResult
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("%w: malformed improvement response: %v", ErrValidation, err)
	}

	return &result, nil
}

// AskQuestion implements AnalyzerService. When the resume was indexed, the
// most relevant chunks ground the prompt; otherwise the full resume text is
// used.
func (a *analyzerService) AskQuestion(ctx context.Context, userID uint, resume *models.Resume, question string, history []models.ChatMessage) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is required", ErrValidation)
	}

	client, err := a.clientFor(userID)
	if err != nil {
		return "", err
	}

	resumeContext := resume.Content
	if a.qdrant != nil && a.embedder != nil {
		if ragContext := a.retrieveContext(ctx, resume.ID.String(), question); ragContext != "" {
			resumeContext = ragContext
		}
	}

	prompt := a.prompts.BuildAskPrompt(resumeContext, question, history)
	answer, err := CompleteWithRetry(ctx, client, prompt, 0.5, a.maxRetries)
	if err != nil {
		return "", fmt.Errorf("question answering failed: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

func (a *analyzerService) retrieveContext(ctx context.Context, resumeID, query string) string {
	embedding, err := a.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Failed to embed question: %v\n", err)
		return ""
	}

	results, err := a.qdrant.SearchSimilar(ctx, embedding, resumeID, 4)
	if err != nil {
		log.Printf("⚠️  Failed to search resume chunks: %v\n", err)
		return ""
	}

	return FormatRAGContext(results)
}

// GenerateQuestions implements AnalyzerService. At most count questions are
// returned; the upstream may produce fewer.
func (a *analyzerService) GenerateQuestions(ctx context.Context, userID uint, resumeText string, questionTypes []string, difficulty string, count int) ([]string, error) {
	client, err := a.clientFor(userID)
	if err != nil {
		return nil, err
	}

	prompt := a.prompts.BuildQuestionsPrompt(resumeText, questionTypes, difficulty, count)
	response, err := CompleteWithRetry(ctx, client, prompt, 0.7, a.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	questions, err := parseQuestions(response)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed questions response: %v", ErrValidation, err)
	}
	if len(questions) > count {
		questions = questions[:count]
	}

	return questions, nil
}

// ScoreAnswer implements AnswerScorer for the interview session machine.
func (a *analyzerService) ScoreAnswer(ctx context.Context, userID uint, question, answer string) (*models.AnswerScore, error) {
	client, err := a.clientFor(userID)
	if err != nil {
		return nil, err
	}

	prompt := a.prompts.BuildScoringPrompt(question, answer)
	response, err := CompleteWithRetry(ctx, client, prompt, 0.3, a.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("answer scoring failed: %w", err)
	}

	var score models.AnswerScore
	if err := parseJSONResponse(response, &score); err != nil {
		return nil, fmt.Errorf("%w: malformed score response: %v", ErrValidation, err)
	}
	for name, value := range map[string]float64{
		"communication":       score.Communication,
		"technical_knowledge": score.TechnicalKnowledge,
		"problem_solving":     score.ProblemSolving,
		"overall":             score.Overall,
	} {
		if value < 0 || value > 10 {
			return nil, fmt.Errorf("%w: %s score %.1f out of range", ErrValidation, name, value)
		}
	}

	return &score, nil
}

// IndexResume implements AnalyzerService. Chunks the resume text and upserts
// chunk embeddings. Callers treat failures as best-effort.
func (a *analyzerService) IndexResume(ctx context.Context, resumeID, text string) error {
	if a.qdrant == nil || a.embedder == nil {
		return nil
	}

	chunks := a.chunker.ChunkText(text, 1000, 100)
	for i, chunk := range chunks {
		embedding, err := a.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		if err := a.qdrant.UpsertChunk(ctx, resumeID, i, chunk, embedding); err != nil {
			return fmt.Errorf("failed to index chunk %d: %w", i, err)
		}
	}

	return nil
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// parseQuestions accepts either a plain array of strings or an array of
// {"question": "..."} objects, which some models insist on returning.
func parseQuestions(response string) ([]string, error) {
	jsonStr := extractJSON(response)

	var questions []string
	if err := json.Unmarshal([]byte(jsonStr), &questions); err == nil {
		return nonEmpty(questions), nil
	}

	var wrapped []struct {
		Question string `json:"question"`
		Text     string `json:"text"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}

	for _, item := range wrapped {
		q := item.Question
		if q == "" {
			q = item.Text
		}
		questions = append(questions, q)
	}

	return nonEmpty(questions), nil
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// extractJSON tries to extract JSON from text that might contain markdown or
// other formatting around the payload.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	switch {
	case startArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj):
		return text[startArr : endArr+1]
	case startObj != -1 && endObj > startObj:
		return text[startObj : endObj+1]
	}

	return text
}
