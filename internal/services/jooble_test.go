package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJoobleSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/secret-key" {
			t.Errorf("api key missing from path: %q", r.URL.Path)
		}

		var req joobleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Keywords != "golang" || req.Location != "Berlin" {
			t.Errorf("request not forwarded: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"totalCount": 3,
			"jobs": [
				{"title": "Go Dev 1", "company": "A", "location": "Berlin", "snippet": "s", "link": "l1", "updated": "2026-08-01"},
				{"title": "Go Dev 2", "company": "B", "location": "Berlin", "snippet": "s", "link": "l2", "updated": "2026-08-02"},
				{"title": "Go Dev 3", "company": "C", "location": "Berlin", "snippet": "s", "link": "l3", "updated": "2026-08-03"}
			]
		}`))
	}))
	defer server.Close()

	client := NewJoobleClient("secret-key", server.URL)

	listings, err := client.Search(context.Background(), "golang", "Berlin", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected truncation to 2 listings, got %d", len(listings))
	}
	if listings[0].Title != "Go Dev 1" || listings[1].Company != "B" {
		t.Fatalf("unexpected listings: %+v", listings)
	}
}

func TestJoobleSearchRequiresAPIKey(t *testing.T) {
	client := NewJoobleClient("", "https://jooble.org/api")

	_, err := client.Search(context.Background(), "golang", "", 10)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}
