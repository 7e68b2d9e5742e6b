package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"resumate/backend/internal/models"
)

// AdzunaClient queries the Adzuna REST API.
type AdzunaClient struct {
	appID      string
	appKey     string
	baseURL    string
	country    string
	HTTPClient *http.Client
}

func NewAdzunaClient(appID, appKey, baseURL string) *AdzunaClient {
	return &AdzunaClient{
		appID:   appID,
		appKey:  appKey,
		baseURL: baseURL,
		country: "gb",
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *AdzunaClient) Platform() string { return "adzuna" }

type adzunaResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		Description string `json:"description"`
		RedirectURL string `json:"redirect_url"`
		Created     string `json:"created"`
	} `json:"results"`
}

// Search implements JobSearcher.
func (c *AdzunaClient) Search(ctx context.Context, query, location string, maxResults int) ([]models.JobListing, error) {
	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("what", query)
	if location != "" {
		q.Set("where", location)
	}
	q.Set("results_per_page", strconv.Itoa(maxResults))
	q.Set("content-type", "application/json")

	endpoint := fmt.Sprintf("%s/jobs/%s/search/1", c.baseURL, c.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var payload adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	listings := make([]models.JobListing, 0, len(payload.Results))
	for _, result := range payload.Results {
		listings = append(listings, models.JobListing{
			Title:       result.Title,
			Company:     result.Company.DisplayName,
			Location:    result.Location.DisplayName,
			Description: result.Description,
			URL:         result.RedirectURL,
			PostedDate:  result.Created,
		})
	}

	return listings, nil
}
