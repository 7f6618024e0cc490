package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"FinCast/internal/domain/models"
	"FinCast/internal/service/ratelimit"
	"FinCast/internal/usecase"
	"FinCast/pkg/cache"
	xlogger "FinCast/pkg/logger"
)

type stubMarket struct {
	candles []models.Candle
	quote   models.Quote
}

func (m *stubMarket) History(_ context.Context, _ string, _ string) ([]models.Candle, error) {
	return m.candles, nil
}

func (m *stubMarket) Snapshot(_ context.Context, symbol string) (models.Quote, error) {
	q := m.quote
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return q, nil
}

type stubNews struct{ articles []models.Article }

func (n *stubNews) Search(_ context.Context, _ string, _ int) ([]models.Article, error) {
	return n.articles, nil
}

type stubScorer struct{ score models.TextScore }

func (s *stubScorer) Score(_ context.Context, _ string) (models.TextScore, error) {
	return s.score, nil
}

type stubSymbols struct{ symbols []string }

func (s *stubSymbols) Fetch(_ context.Context) ([]string, error) { return s.symbols, nil }

type stubMetrics struct{}

func (stubMetrics) RecordCacheHit(string)                {}
func (stubMetrics) RecordCacheMiss(string)               {}
func (stubMetrics) RecordProviderError(string)           {}
func (stubMetrics) RecordArticlesScored(int)             {}
func (stubMetrics) RecordForecast(string)                {}
func (stubMetrics) RecordSentimentScore(string, float64) {}
func (stubMetrics) RecordLatency(string, float64)        {}

func testCandles(n int) []models.Candle {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, 0, n)
	d := start
	for len(candles) < n {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			candles = append(candles, models.Candle{
				Date: d, Open: 100, High: 101, Low: 99, Close: 100, Volume: 500,
			})
		}
		d = d.AddDate(0, 0, 1)
	}
	return candles
}

func newTestHandler(t *testing.T, rl RateLimitSettings) (*StocksEchoHandler, *echo.Echo) {
	t.Helper()
	log := xlogger.Nop()
	market := &stubMarket{
		candles: testCandles(300),
		quote:   models.Quote{Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 100},
	}
	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(100))

	analyzer := usecase.NewSentimentAnalyzer(&stubNews{}, &stubScorer{}, stubMetrics{}, log, 20)
	stocks := usecase.NewStocksUseCase(market, mem, stubMetrics{}, log, time.Hour)
	predictor := usecase.NewPredictor(market, analyzer, stubMetrics{}, log, usecase.PredictorConfig{}, nil)
	directory := usecase.NewSymbolDirectory(&stubSymbols{symbols: []string{"AAPL", "MSFT", "GOOGL"}}, mem, log, time.Hour)

	h := NewStocksEchoHandler(log, stocks, predictor, analyzer, directory, ratelimit.New(), rl)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func doGET(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHistoryEndpointShape(t *testing.T) {
	_, e := newTestHandler(t, RateLimitSettings{})

	rec := doGET(e, "/api/stock/aapl?period=1mo")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		OHLC   [][]float64 `json:"ohlc"`
		Volume [][]float64 `json:"volume"`
		Dates  []string    `json:"dates"`
		Prices []float64   `json:"prices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.OHLC) == 0 || len(body.OHLC) != len(body.Dates) || len(body.Dates) != len(body.Prices) {
		t.Errorf("uneven arrays: ohlc=%d dates=%d prices=%d",
			len(body.OHLC), len(body.Dates), len(body.Prices))
	}
}

func TestDetailsEndpointSnakeCase(t *testing.T) {
	_, e := newTestHandler(t, RateLimitSettings{})

	rec := doGET(e, "/api/stock/AAPL/details")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"symbol", "name", "current_price", "market_cap", "pe_ratio"} {
		if _, ok := body[field]; !ok {
			t.Errorf("missing field %q in %s", field, rec.Body.String())
		}
	}
}

func TestPredictEndpoint(t *testing.T) {
	_, e := newTestHandler(t, RateLimitSettings{})

	rec := doGET(e, "/api/stock/AAPL/predict?period=1w")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body models.ForecastResult
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Dates) != 7 {
		t.Errorf("got %d forecast rows, want 7", len(body.Dates))
	}
}

func TestSentimentEndpointEmptyDefault(t *testing.T) {
	_, e := newTestHandler(t, RateLimitSettings{})

	rec := doGET(e, "/api/stock/AAPL/sentiment")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body models.SentimentResult
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OverallSentiment != models.SentimentNeutral || body.SentimentScore != 0 {
		t.Errorf("expected neutral default, got %+v", body)
	}
}

func TestSearchEndpoint(t *testing.T) {
	_, e := newTestHandler(t, RateLimitSettings{})

	rec := doGET(e, "/api/search?query=goog")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var symbols []string
	if err := json.Unmarshal(rec.Body.Bytes(), &symbols); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(symbols) != 1 || symbols[0] != "GOOGL" {
		t.Errorf("search = %v, want [GOOGL]", symbols)
	}
}

func TestPredictRateLimited(t *testing.T) {
	_, e := newTestHandler(t, RateLimitSettings{Enabled: true, Capacity: 2, RefillPerSec: 0.01})

	for i := 0; i < 2; i++ {
		if rec := doGET(e, "/api/stock/AAPL/predict"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	rec := doGET(e, "/api/stock/AAPL/predict")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestPredictNoHistoryReturns404(t *testing.T) {
	log := xlogger.Nop()
	market := &stubMarket{}
	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(100))

	analyzer := usecase.NewSentimentAnalyzer(&stubNews{}, &stubScorer{}, stubMetrics{}, log, 20)
	stocks := usecase.NewStocksUseCase(market, mem, stubMetrics{}, log, time.Hour)
	predictor := usecase.NewPredictor(market, analyzer, stubMetrics{}, log, usecase.PredictorConfig{}, nil)
	directory := usecase.NewSymbolDirectory(&stubSymbols{}, mem, log, time.Hour)

	h := NewStocksEchoHandler(log, stocks, predictor, analyzer, directory, ratelimit.New(), RateLimitSettings{})
	e := echo.New()
	h.RegisterRoutes(e)

	rec := doGET(e, "/api/stock/ZZZZ/predict")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == "" {
		t.Errorf("expected error message in body %s", rec.Body.String())
	}
}

func TestSymbolValidation(t *testing.T) {
	_, e := newTestHandler(t, RateLimitSettings{})

	rec := doGET(e, "/api/stock/WAYTOOLONGSYMBOL")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
