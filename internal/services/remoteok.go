package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"resumate/backend/internal/models"
)

// RemoteOKScraper scrapes remoteok.com search pages. Unlike the API-backed
// platforms it needs no key, at the cost of being tied to the board's
// markup.
type RemoteOKScraper struct {
	userAgent string
	timeout   time.Duration
}

func NewRemoteOKScraper() *RemoteOKScraper {
	return &RemoteOKScraper{
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		timeout:   30 * time.Second,
	}
}

func (s *RemoteOKScraper) Platform() string { return "remoteok" }

// Search implements JobSearcher.
func (s *RemoteOKScraper) Search(ctx context.Context, query, location string, maxResults int) ([]models.JobListing, error) {
	c := colly.NewCollector(
		colly.AllowedDomains("remoteok.com", "www.remoteok.com"),
	)
	c.SetRequestTimeout(s.timeout)

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       1 * time.Second,
	})

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", s.userAgent)
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	})

	var mu sync.Mutex
	var listings []models.JobListing
	var scrapeErr error

	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("request to %s failed: %w", r.Request.URL, err)
	})

	c.OnHTML("tr.job", func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		if len(listings) >= maxResults {
			return
		}

		title := strings.TrimSpace(e.ChildText("h2[itemprop=title]"))
		company := strings.TrimSpace(e.ChildText("h3[itemprop=name]"))
		if title == "" || company == "" {
			return
		}

		jobURL := e.Attr("data-href")
		if jobURL != "" && !strings.HasPrefix(jobURL, "http") {
			jobURL = "https://remoteok.com" + jobURL
		}

		listings = append(listings, models.JobListing{
			Title:       title,
			Company:     company,
			Location:    strings.TrimSpace(e.ChildText("div.location")),
			Description: strings.TrimSpace(e.ChildText("div.description")),
			URL:         jobURL,
			PostedDate:  e.ChildAttr("time", "datetime"),
		})
	})

	searchURL := "https://remoteok.com/remote-" + strings.ReplaceAll(strings.TrimSpace(strings.ToLower(query)), " ", "-") + "-jobs"
	if strings.TrimSpace(query) == "" {
		searchURL = "https://remoteok.com/"
	}

	if err := c.Visit(searchURL); err != nil {
		return nil, err
	}
	c.Wait()

	if scrapeErr != nil && len(listings) == 0 {
		return nil, scrapeErr
	}

	return listings, nil
}
