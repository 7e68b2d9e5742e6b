package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"resumate/backend/internal/models"
	"resumate/backend/internal/repositories"
)

// IntensityFull is the default analysis intensity. An absent intensity
// normalizes to it on both lookup and store, so missing-vs-empty never
// produces a spurious cache miss.
const IntensityFull = "full"

type cacheKey struct {
	UserID     uint
	ResumeHash string
	JDHash     string
	Provider   string
	Model      string
	Intensity  string
}

func normalizeCacheKey(userID uint, resumeHash, jdHash, provider, model, intensity string) cacheKey {
	if intensity == "" {
		intensity = IntensityFull
	}
	return cacheKey{
		UserID:     userID,
		ResumeHash: resumeHash,
		JDHash:     jdHash,
		Provider:   provider,
		Model:      model,
		Intensity:  intensity,
	}
}

type latestAnalysis struct {
	resumeText string
	result     *models.AnalysisResult
}

// AnalysisCache memoizes analysis results under the composite
// (user, resume hash, JD hash, provider, model, intensity) key. It layers a
// per-process map over an optional persistent repository; the persistent
// layer failing never fails the caller's request.
type AnalysisCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*models.AnalysisResult
	latest  map[uint]latestAnalysis
	repo    repositories.AnalysisRepository
}

// NewAnalysisCache creates a cache. repo may be nil, leaving only the
// in-memory layer active.
func NewAnalysisCache(repo repositories.AnalysisRepository) *AnalysisCache {
	return &AnalysisCache{
		entries: make(map[cacheKey]*models.AnalysisResult),
		latest:  make(map[uint]latestAnalysis),
		repo:    repo,
	}
}

// Lookup returns the cached result for the exact normalized key, or nil on a
// miss. A persistent hit repopulates the in-memory layer. Returned results
// are treated as immutable by all callers.
func (c *AnalysisCache) Lookup(userID uint, resumeHash, jdHash, provider, model, intensity string) *models.AnalysisResult {
	key := normalizeCacheKey(userID, resumeHash, jdHash, provider, model, intensity)

	c.mu.RLock()
	result, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return result
	}

	if c.repo == nil {
		return nil
	}

	entry, err := c.repo.Lookup(key.UserID, key.ResumeHash, key.JDHash, key.Provider, key.Model, key.Intensity)
	if err != nil || entry == nil {
		return nil
	}

	var stored models.AnalysisResult
	if err := json.Unmarshal(entry.Result, &stored); err != nil {
		return nil
	}

	c.mu.Lock()
	c.entries[key] = &stored
	c.mu.Unlock()

	return &stored
}

// Store upserts the result under the normalized key. The in-memory layer
// always succeeds; a persistent-layer error is returned so the caller can
// log it, but the caller must treat it as non-fatal.
func (c *AnalysisCache) Store(userID uint, resumeHash, jdHash, provider, model, intensity string, result *models.AnalysisResult) error {
	key := normalizeCacheKey(userID, resumeHash, jdHash, provider, model, intensity)

	c.mu.Lock()
	c.entries[key] = result
	c.mu.Unlock()

	if c.repo == nil {
		return nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	entry := &models.AnalysisCacheEntry{
		UserID:     key.UserID,
		ResumeHash: key.ResumeHash,
		JDHash:     key.JDHash,
		Provider:   key.Provider,
		Model:      key.Model,
		Intensity:  key.Intensity,
		Result:     payload,
	}
	if err := c.repo.Store(entry); err != nil {
		return fmt.Errorf("failed to persist analysis result: %w", err)
	}

	return nil
}

// SetLatest memoizes the most recent analysis per user; improve/ask/interview
// reuse it instead of re-analyzing.
func (c *AnalysisCache) SetLatest(userID uint, resumeText string, result *models.AnalysisResult) {
	c.mu.Lock()
	c.latest[userID] = latestAnalysis{resumeText: resumeText, result: result}
	c.mu.Unlock()
}

// Latest returns the per-user memo set by SetLatest.
func (c *AnalysisCache) Latest(userID uint) (string, *models.AnalysisResult, bool) {
	c.mu.RLock()
	memo, ok := c.latest[userID]
	c.mu.RUnlock()
	if !ok {
		return "", nil, false
	}
	return memo.resumeText, memo.result, true
}

// Len reports the in-memory entry count. Exposed on the health endpoint so
// operators can watch unbounded growth.
func (c *AnalysisCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
