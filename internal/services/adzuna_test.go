package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdzunaSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/gb/search/1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("app_id") != "id" || q.Get("app_key") != "key" {
			t.Error("credentials not forwarded")
		}
		if q.Get("what") != "golang" {
			t.Errorf("query not forwarded: %q", q.Get("what"))
		}
		if q.Get("where") != "London" {
			t.Errorf("location not forwarded: %q", q.Get("where"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{
					"title": "Go Developer",
					"company": {"display_name": "Acme"},
					"location": {"display_name": "London"},
					"description": "Build services",
					"redirect_url": "https://example.com/job/1",
					"created": "2026-08-01T00:00:00Z"
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewAdzunaClient("id", "key", server.URL)

	listings, err := client.Search(context.Background(), "golang", "London", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	job := listings[0]
	if job.Title != "Go Developer" || job.Company != "Acme" || job.Location != "London" {
		t.Fatalf("unexpected listing: %+v", job)
	}
	if job.URL != "https://example.com/job/1" {
		t.Fatalf("unexpected url: %q", job.URL)
	}
}

func TestAdzunaSearchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewAdzunaClient("id", "key", server.URL)

	if _, err := client.Search(context.Background(), "golang", "", 10); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
