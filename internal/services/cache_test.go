package services

import (
	"encoding/json"
	"errors"
	"testing"

	"resumate/backend/internal/models"
)

type fakeAnalysisRepo struct {
	entries  map[cacheKey]*models.AnalysisCacheEntry
	storeErr error
	lookups  int
	stores   int
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{entries: make(map[cacheKey]*models.AnalysisCacheEntry)}
}

func (f *fakeAnalysisRepo) Lookup(userID uint, resumeHash, jdHash, provider, model, intensity string) (*models.AnalysisCacheEntry, error) {
	f.lookups++
	key := cacheKey{userID, resumeHash, jdHash, provider, model, intensity}
	return f.entries[key], nil
}

func (f *fakeAnalysisRepo) Store(entry *models.AnalysisCacheEntry) error {
	f.stores++
	if f.storeErr != nil {
		return f.storeErr
	}
	key := cacheKey{entry.UserID, entry.ResumeHash, entry.JDHash, entry.Provider, entry.Model, entry.Intensity}
	f.entries[key] = entry
	return nil
}

func sampleResult(score float64) *models.AnalysisResult {
	return &models.AnalysisResult{
		OverallScore:   score,
		MatchingSkills: []string{"go"},
	}
}

func TestCacheStoreLookupRoundtrip(t *testing.T) {
	cache := NewAnalysisCache(nil)

	result := sampleResult(82.5)
	if err := cache.Store(1, "rh", "jh", "groq", "llama", "full", result); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got := cache.Lookup(1, "rh", "jh", "groq", "llama", "full")
	if got == nil {
		t.Fatal("expected cache hit")
	}
	if got.OverallScore != 82.5 {
		t.Fatalf("expected score 82.5, got %v", got.OverallScore)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", cache.Len())
	}
}

func TestCacheMissWhenAnyKeyFieldDiffers(t *testing.T) {
	cache := NewAnalysisCache(nil)
	if err := cache.Store(1, "rh", "jh", "groq", "llama", "full", sampleResult(70)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	misses := []struct {
		name                                           string
		userID                                         uint
		resumeHash, jdHash, provider, model, intensity string
	}{
		{"different user", 2, "rh", "jh", "groq", "llama", "full"},
		{"different resume", 1, "other", "jh", "groq", "llama", "full"},
		{"different jd", 1, "rh", "other", "groq", "llama", "full"},
		{"different provider", 1, "rh", "jh", "gemini", "llama", "full"},
		{"different model", 1, "rh", "jh", "groq", "other", "full"},
		{"different intensity", 1, "rh", "jh", "groq", "llama", "quick"},
	}
	for _, m := range misses {
		if got := cache.Lookup(m.userID, m.resumeHash, m.jdHash, m.provider, m.model, m.intensity); got != nil {
			t.Fatalf("%s: expected miss, got hit", m.name)
		}
	}
}

func TestCacheIntensityNormalization(t *testing.T) {
	cache := NewAnalysisCache(nil)

	// Empty intensity stores under "full".
	if err := cache.Store(1, "rh", "jh", "groq", "llama", "", sampleResult(60)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if got := cache.Lookup(1, "rh", "jh", "groq", "llama", "full"); got == nil {
		t.Fatal("empty intensity on store should hit an explicit full lookup")
	}
	if got := cache.Lookup(1, "rh", "jh", "groq", "llama", ""); got == nil {
		t.Fatal("empty intensity on lookup should hit a full entry")
	}
	if cache.Len() != 1 {
		t.Fatalf("normalization should collapse to one entry, got %d", cache.Len())
	}
}

func TestCacheStoreOverwrites(t *testing.T) {
	cache := NewAnalysisCache(nil)

	cache.Store(1, "rh", "jh", "groq", "llama", "full", sampleResult(50))
	cache.Store(1, "rh", "jh", "groq", "llama", "full", sampleResult(90))

	got := cache.Lookup(1, "rh", "jh", "groq", "llama", "full")
	if got == nil || got.OverallScore != 90 {
		t.Fatalf("expected overwritten entry with score 90, got %+v", got)
	}
	if cache.Len() != 1 {
		t.Fatalf("upsert should not grow the cache, got %d entries", cache.Len())
	}
}

func TestCachePersistentLayerRepopulatesMemory(t *testing.T) {
	repo := newFakeAnalysisRepo()
	payload, _ := json.Marshal(sampleResult(77))
	repo.entries[cacheKey{1, "rh", "jh", "groq", "llama", "full"}] = &models.AnalysisCacheEntry{
		UserID:     1,
		ResumeHash: "rh",
		JDHash:     "jh",
		Provider:   "groq",
		Model:      "llama",
		Intensity:  "full",
		Result:     payload,
	}

	cache := NewAnalysisCache(repo)

	got := cache.Lookup(1, "rh", "jh", "groq", "llama", "full")
	if got == nil || got.OverallScore != 77 {
		t.Fatalf("expected persistent hit with score 77, got %+v", got)
	}

	// Second lookup must be served from memory.
	cache.Lookup(1, "rh", "jh", "groq", "llama", "full")
	if repo.lookups != 1 {
		t.Fatalf("expected 1 repository lookup, got %d", repo.lookups)
	}
}

func TestCacheStoreErrorIsReturnedButMemoryUpdated(t *testing.T) {
	repo := newFakeAnalysisRepo()
	repo.storeErr = errors.New("database down")

	cache := NewAnalysisCache(repo)

	err := cache.Store(1, "rh", "jh", "groq", "llama", "full", sampleResult(65))
	if err == nil {
		t.Fatal("expected persistence error to surface")
	}

	// The in-memory layer still has the entry.
	if got := cache.Lookup(1, "rh", "jh", "groq", "llama", "full"); got == nil {
		t.Fatal("expected in-memory hit despite persistence failure")
	}
}

func TestCacheLatestMemo(t *testing.T) {
	cache := NewAnalysisCache(nil)

	if _, _, ok := cache.Latest(1); ok {
		t.Fatal("expected no memo for a fresh user")
	}

	cache.SetLatest(1, "resume text", sampleResult(88))

	text, result, ok := cache.Latest(1)
	if !ok || text != "resume text" || result.OverallScore != 88 {
		t.Fatalf("unexpected memo: %q %+v %v", text, result, ok)
	}

	if _, _, ok := cache.Latest(2); ok {
		t.Fatal("memo must be per-user")
	}
}
