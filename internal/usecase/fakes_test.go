package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"FinCast/internal/domain/models"
)

// fakeClock is a manually advanced time source shared by a test's caches.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(start time.Time) *fakeClock { return &fakeClock{t: start} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// fakeMarket serves a canned candle series and counts calls.
type fakeMarket struct {
	mu           sync.Mutex
	candles      []models.Candle
	quote        models.Quote
	historyCalls int
	historyErr   error
}

func (m *fakeMarket) History(_ context.Context, _ string, _ string) ([]models.Candle, error) {
	m.mu.Lock()
	m.historyCalls++
	m.mu.Unlock()
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.candles, nil
}

func (m *fakeMarket) Snapshot(_ context.Context, symbol string) (models.Quote, error) {
	q := m.quote
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return q, nil
}

func (m *fakeMarket) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.historyCalls
}

// fakeNews returns a fixed article list.
type fakeNews struct {
	articles []models.Article
	calls    int
}

func (n *fakeNews) Search(_ context.Context, _ string, _ int) ([]models.Article, error) {
	n.calls++
	return n.articles, nil
}

// fakeScorer maps text prefixes to canned scores; unknown text gets neutral.
type fakeScorer struct {
	byPrefix map[string]models.TextScore
	err      error
}

func (s *fakeScorer) Score(_ context.Context, text string) (models.TextScore, error) {
	if s.err != nil {
		return models.TextScore{}, s.err
	}
	for prefix, ts := range s.byPrefix {
		if strings.HasPrefix(text, prefix) {
			return ts, nil
		}
	}
	return models.TextScore{Sentiment: models.SentimentNeutral, Score: 0.5}, nil
}

// fakeSymbols serves a fixed universe.
type fakeSymbols struct {
	symbols []string
	calls   int
}

func (f *fakeSymbols) Fetch(_ context.Context) ([]string, error) {
	f.calls++
	return f.symbols, nil
}

// nopMetrics satisfies the metrics interface without recording anything.
type nopMetrics struct{}

func (nopMetrics) RecordCacheHit(string)             {}
func (nopMetrics) RecordCacheMiss(string)            {}
func (nopMetrics) RecordProviderError(string)        {}
func (nopMetrics) RecordArticlesScored(int)          {}
func (nopMetrics) RecordForecast(string)             {}
func (nopMetrics) RecordSentimentScore(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)     {}

func dailyCandles(start time.Time, n int, price func(i int) float64) []models.Candle {
	candles := make([]models.Candle, 0, n)
	d := start
	for len(candles) < n {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			p := price(len(candles))
			candles = append(candles, models.Candle{
				Date: d, Open: p, High: p, Low: p, Close: p, Volume: 1000,
			})
		}
		d = d.AddDate(0, 0, 1)
	}
	return candles
}

func article(i int) models.Article {
	return models.Article{
		Title:         fmt.Sprintf("title-%d", i),
		Content:       fmt.Sprintf("content-%d", i),
		URL:           fmt.Sprintf("https://news.example/%d", i),
		PublishedDate: "2025-08-01",
		Source:        "example",
	}
}
