package quotesearch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tickerforge/internal/services/quotesearch"
)

func TestSearchReturnsQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/finance/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Acme Widget" {
			t.Errorf("q = %q, want %q", got, "Acme Widget")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2,"quotes":[{"symbol":"ACME","shortname":"Acme Widget Corp","exchange":"NMS","quoteType":"EQUITY"},{"symbol":"ACMX","quoteType":"ETF"}]}`))
	}))
	defer server.Close()

	client, err := quotesearch.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	quotes, err := client.Search(context.Background(), "Acme Widget")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Symbol != "ACME" || quotes[0].QuoteType != "EQUITY" {
		t.Fatalf("unexpected first quote: %+v", quotes[0])
	}
}

func TestSearchRejectsEmptyTerm(t *testing.T) {
	client, err := quotesearch.New("http://localhost:1")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Search(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank term")
	}
}

func TestSearchSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := quotesearch.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Search(context.Background(), "Acme"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := quotesearch.New("   "); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
