package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xlogger "FinCast/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordCacheHit(string)                {}
func (nopMetrics) RecordCacheMiss(string)               {}
func (nopMetrics) RecordProviderError(string)           {}
func (nopMetrics) RecordArticlesScored(int)             {}
func (nopMetrics) RecordForecast(string)                {}
func (nopMetrics) RecordSentimentScore(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)        {}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("", "https://api.tavily.com", time.Second, xlogger.Nop(), nopMetrics{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestSearchMapsResults(t *testing.T) {
	var gotAuth string
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"title": "Apple beats estimates", "url": "https://n.example/1",
					"content": "strong quarter", "published_date": "2025-08-20T14:30:00Z", "score": 0.91},
				{"title": "Supply chain shifts", "url": "https://n.example/2",
					"content": "expansion", "published_date": "a week ago", "score": 0.55},
			},
		})
	}))
	defer srv.Close()

	c, err := New("tv-key", srv.URL, 5*time.Second, xlogger.Nop(), nopMetrics{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	articles, err := c.Search(context.Background(), "Apple Inc. (AAPL) stock market news sentiment analysis financial", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotAuth != "Bearer tv-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq["search_depth"] != "advanced" || gotReq["topic"] != "news" || gotReq["time_range"] != "month" {
		t.Errorf("request body = %v", gotReq)
	}
	if len(articles) != 2 || articles[0].Title != "Apple beats estimates" {
		t.Fatalf("articles = %+v", articles)
	}
	if articles[0].PublishedDate != "2025-08-20" {
		t.Errorf("published date = %q, want normalized ISO date", articles[0].PublishedDate)
	}
	if articles[1].PublishedDate != "a week ago" {
		t.Errorf("unparsable date = %q, want raw value kept", articles[1].PublishedDate)
	}
}

func TestSearchDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := New("tv-key", srv.URL, 5*time.Second, xlogger.Nop(), nopMetrics{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	articles, err := c.Search(context.Background(), "anything", 20)
	if err != nil {
		t.Fatalf("expected degraded empty slice, got error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("articles = %v, want empty", articles)
	}
}
