package repository

import (
	"context"

	"FinCast/internal/domain/models"
)

// MarketData retrieves raw price history and snapshot fundamentals for a
// ticker from an external provider.
type MarketData interface {
	History(ctx context.Context, symbol, period string) ([]models.Candle, error)
	Snapshot(ctx context.Context, symbol string) (models.Quote, error)
}

// NewsProvider retrieves recent news articles matching a query.
type NewsProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.Article, error)
}

// SymbolsProvider retrieves the reference symbol universe.
type SymbolsProvider interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Metrics records operational counters and gauges.
type Metrics interface {
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
	RecordProviderError(provider string)
	RecordArticlesScored(n int)
	RecordForecast(horizon string)
	RecordSentimentScore(symbol string, score float64)
	RecordLatency(op string, seconds float64)
}
