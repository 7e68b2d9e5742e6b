package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resumate/backend/internal/models"
)

// JoobleClient queries the Jooble REST API. The API key is part of the URL
// path, per Jooble's scheme.
type JoobleClient struct {
	apiKey     string
	baseURL    string
	HTTPClient *http.Client
}

func NewJoobleClient(apiKey, baseURL string) *JoobleClient {
	return &JoobleClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *JoobleClient) Platform() string { return "jooble" }

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	Page     int    `json:"page"`
}

type joobleResponse struct {
	TotalCount int `json:"totalCount"`
	Jobs       []struct {
		Title    string `json:"title"`
		Company  string `json:"company"`
		Location string `json:"location"`
		Snippet  string `json:"snippet"`
		Link     string `json:"link"`
		Updated  string `json:"updated"`
	} `json:"jobs"`
}

// Search implements JobSearcher.
func (c *JoobleClient) Search(ctx context.Context, query, location string, maxResults int) ([]models.JobListing, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: JOOBLE_API_KEY not configured", ErrInvalidConfiguration)
	}

	body, err := json.Marshal(joobleRequest{
		Keywords: query,
		Location: location,
		Page:     1,
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var payload joobleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	listings := make([]models.JobListing, 0, len(payload.Jobs))
	for _, job := range payload.Jobs {
		if len(listings) >= maxResults {
			break
		}
		listings = append(listings, models.JobListing{
			Title:       job.Title,
			Company:     job.Company,
			Location:    job.Location,
			Description: job.Snippet,
			URL:         job.Link,
			PostedDate:  job.Updated,
		})
	}

	return listings, nil
}
