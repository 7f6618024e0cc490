package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FinCast/internal/domain/models"
	domrepo "FinCast/internal/domain/repository"
	"FinCast/pkg/cache"
	xlogger "FinCast/pkg/logger"
)

// StocksUseCase serves chart history and snapshot fundamentals, with a
// short-lived cache in front of the market data provider.
type StocksUseCase struct {
	market  domrepo.MarketData
	cache   cache.Service
	metrics domrepo.Metrics
	logger  *xlogger.Logger
	ttl     time.Duration
}

func NewStocksUseCase(market domrepo.MarketData, cacheSvc cache.Service, metrics domrepo.Metrics, logger *xlogger.Logger, ttl time.Duration) *StocksUseCase {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &StocksUseCase{market: market, cache: cacheSvc, metrics: metrics, logger: logger, ttl: ttl}
}

// History returns chart-shaped price history for the symbol over the period.
// The provider degrades to an empty candle list on upstream failure, so the
// caller always gets a well-formed (possibly empty) payload.
func (s *StocksUseCase) History(ctx context.Context, symbol, period string) (models.StockHistory, error) {
	key := cache.GenerateKeyWithParams("history", symbol, period)
	var h models.StockHistory
	if ok := s.cachedJSON(ctx, key, &h); ok {
		s.metrics.RecordCacheHit("history")
		return h, nil
	}
	s.metrics.RecordCacheMiss("history")

	candles, err := s.market.History(ctx, symbol, period)
	if err != nil {
		return models.StockHistory{}, fmt.Errorf("history %s: %w", symbol, err)
	}
	h = models.HistoryFromCandles(candles)
	s.storeJSON(ctx, key, h)
	return h, nil
}

// Details returns the company snapshot. A provider failure yields a zeroed
// Quote with only the symbol set, never an error.
func (s *StocksUseCase) Details(ctx context.Context, symbol string) (models.Quote, error) {
	key := cache.GenerateKey("quote", symbol)
	var q models.Quote
	if ok := s.cachedJSON(ctx, key, &q); ok {
		s.metrics.RecordCacheHit("quote")
		return q, nil
	}
	s.metrics.RecordCacheMiss("quote")

	q, err := s.market.Snapshot(ctx, symbol)
	if err != nil {
		return models.Quote{}, fmt.Errorf("snapshot %s: %w", symbol, err)
	}
	s.storeJSON(ctx, key, q)
	return q, nil
}

// CompanyName resolves the display name for a ticker, falling back to the
// ticker itself when the snapshot has no name.
func (s *StocksUseCase) CompanyName(ctx context.Context, symbol string) string {
	q, err := s.Details(ctx, symbol)
	if err != nil || q.Name == "" {
		return symbol
	}
	return q.Name
}

func (s *StocksUseCase) cachedJSON(ctx context.Context, key string, dest interface{}) bool {
	var raw string
	if err := s.cache.Get(ctx, key, &raw); err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn("corrupt cache entry dropped", xlogger.String("key", key), xlogger.Error(err))
		_ = s.cache.Delete(ctx, key)
		return false
	}
	return true
}

func (s *StocksUseCase) storeJSON(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("cache set failed", xlogger.String("key", key), xlogger.Error(err))
	}
}
