package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"resumate/backend/internal/config"
	"resumate/backend/internal/models"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		DefaultProvider: "groq",
		GroqAPIKey:      "test-key",
		GroqBaseURL:     "https://api.groq.com/openai/v1",
		MaxRetries:      1,
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"fenced object", "```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"object with prose", `Here you go: {"a": 1} hope that helps`, `{"a": 1}`},
		{"plain array", `["x", "y"]`, `["x", "y"]`},
		{"array with prose", `Questions: ["x", "y"] done`, `["x", "y"]`},
		{"array of objects", `[{"question": "x"}]`, `[{"question": "x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.TrimSpace(extractJSON(tt.input))
			if got != tt.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"string array", `["q1", "q2"]`, []string{"q1", "q2"}},
		{"fenced string array", "```json\n[\"q1\"]\n```", []string{"q1"}},
		{"object array", `[{"question": "q1"}, {"question": "q2"}]`, []string{"q1", "q2"}},
		{"object array with text key", `[{"text": "q1"}]`, []string{"q1"}},
		{"blank entries dropped", `["q1", "", "  "]`, []string{"q1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuestions(tt.input)
			if err != nil {
				t.Fatalf("parseQuestions failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}

	if _, err := parseQuestions("not json at all"); err == nil {
		t.Fatal("expected error for unparseable response")
	}
}

func TestParseJSONResponse(t *testing.T) {
	var result models.AnalysisResult
	input := "```json\n{\"overall_score\": 85.5, \"matching_skills\": [\"go\"]}\n```"
	if err := parseJSONResponse(input, &result); err != nil {
		t.Fatalf("parseJSONResponse failed: %v", err)
	}
	if result.OverallScore != 85.5 {
		t.Fatalf("expected score 85.5, got %v", result.OverallScore)
	}
	if len(result.MatchingSkills) != 1 || result.MatchingSkills[0] != "go" {
		t.Fatalf("unexpected skills: %v", result.MatchingSkills)
	}
}

func TestAnalyzeRequiresRole(t *testing.T) {
	cache := NewAnalysisCache(nil)
	factory := NewLLMFactory(testLLMConfig())
	analyzer := NewAnalyzerService(cache, factory, nil, nil, 1)

	resume := &models.Resume{ID: uuid.New(), Content: "resume text", ContentHash: ContentHash("resume text")}
	_, err := analyzer.Analyze(context.Background(), 1, resume, &models.AnalyzeRequest{Role: "  "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing role, got %v", err)
	}
}

func TestAnalyzeRejectsOutOfRangeCutoff(t *testing.T) {
	cache := NewAnalysisCache(nil)
	factory := NewLLMFactory(testLLMConfig())
	analyzer := NewAnalyzerService(cache, factory, nil, nil, 1)

	resume := &models.Resume{ID: uuid.New(), Content: "resume text", ContentHash: ContentHash("resume text")}

	for _, cutoff := range []float64{-1, 100.5, 200} {
		_, err := analyzer.Analyze(context.Background(), 1, resume, &models.AnalyzeRequest{
			Role:        "Backend Engineer",
			CutoffScore: cutoff,
		})
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("cutoff %v: expected ErrInvalidConfiguration, got %v", cutoff, err)
		}
	}
}

func TestAnalyzeServesCacheHitWithoutUpstreamCall(t *testing.T) {
	cache := NewAnalysisCache(nil)
	factory := NewLLMFactory(testLLMConfig())
	analyzer := NewAnalyzerService(cache, factory, nil, nil, 1)

	resume := &models.Resume{ID: uuid.New(), Content: "resume text", ContentHash: ContentHash("resume text")}
	req := &models.AnalyzeRequest{Role: "Backend Engineer", JDText: "build APIs", CutoffScore: 80}

	// Pre-seed the cache under the exact key Analyze will derive. The fake
	// Groq key means any real completion attempt would fail loudly.
	jdHash := ContentHash(req.Role + "\n" + req.JDText + "\n" + strings.Join(req.CustomSkills, ","))
	cached := sampleResult(91)
	if err := cache.Store(1, resume.ContentHash, jdHash, "groq", "llama-3.3-70b-versatile", "full", cached); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := analyzer.Analyze(context.Background(), 1, resume, req)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got.OverallScore != 91 {
		t.Fatalf("expected cached result with score 91, got %v", got.OverallScore)
	}
	// The threshold belongs to this request, not to the cached analysis.
	if got.CutoffScore != 80 || got.Role != "Backend Engineer" {
		t.Fatalf("cache hit must carry the request's cutoff and role, got %v %q", got.CutoffScore, got.Role)
	}
	if cached.CutoffScore != 0 {
		t.Fatal("cache hit must not mutate the stored entry")
	}

	// A cache hit also refreshes the latest-analysis memo.
	text, memo, ok := cache.Latest(1)
	if !ok || text != resume.Content || memo.OverallScore != 91 {
		t.Fatal("expected latest memo to be set from the cache hit")
	}
}

func TestLLMFactoryClientResolution(t *testing.T) {
	factory := NewLLMFactory(testLLMConfig())

	client, err := factory.ClientFor("", "", "")
	if err != nil {
		t.Fatalf("default provider resolution failed: %v", err)
	}
	if client.Provider() != "groq" {
		t.Fatalf("expected groq default, got %q", client.Provider())
	}
	if client.Model() != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected default model %q", client.Model())
	}

	if _, err := factory.ClientFor("nope", "", ""); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for unknown provider, got %v", err)
	}
	if _, err := factory.ClientFor("openai", "", ""); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for missing key, got %v", err)
	}

	custom, err := factory.ClientFor("groq", "user-key", "mixtral-8x7b")
	if err != nil {
		t.Fatalf("custom model resolution failed: %v", err)
	}
	if custom.Model() != "mixtral-8x7b" {
		t.Fatalf("expected user model, got %q", custom.Model())
	}
}
