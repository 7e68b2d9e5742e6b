package services

import (
	"context"
	"fmt"
	"strings"

	"resumate/backend/internal/models"
)

const (
	defaultJobResults = 10
	maxJobResults     = 50
)

// JobSearcher queries one external job platform and normalizes its listings.
type JobSearcher interface {
	Platform() string
	Search(ctx context.Context, query, location string, maxResults int) ([]models.JobListing, error)
}

// JobSearchService routes a search request to the platform named in the
// request. Platforms register at construction time.
type JobSearchService struct {
	searchers map[string]JobSearcher
	fallback  string
}

func NewJobSearchService(searchers ...JobSearcher) *JobSearchService {
	s := &JobSearchService{
		searchers: make(map[string]JobSearcher),
	}
	for _, searcher := range searchers {
		s.searchers[searcher.Platform()] = searcher
		if s.fallback == "" {
			s.fallback = searcher.Platform()
		}
	}
	return s
}

func (s *JobSearchService) Search(ctx context.Context, platform string, req *models.JobSearchRequest) ([]models.JobListing, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		platform = s.fallback
	}

	searcher, ok := s.searchers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: unknown job platform %q", ErrInvalidConfiguration, platform)
	}

	maxResults := req.MaxResults
	if maxResults < 1 {
		maxResults = defaultJobResults
	}
	if maxResults > maxJobResults {
		maxResults = maxJobResults
	}

	listings, err := searcher.Search(ctx, req.Query, req.Location, maxResults)
	if err != nil {
		return nil, fmt.Errorf("%s search failed: %w", platform, err)
	}

	return listings, nil
}
