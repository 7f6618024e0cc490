package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	domrepo "FinCast/internal/domain/repository"
	"FinCast/pkg/cache"
	xlogger "FinCast/pkg/logger"
)

var symbolsCacheKey = cache.GenerateKey("symbols", "universe")

// SymbolDirectory serves the reference ticker universe and substring search
// over it. The scraped list is cached; the provider falls back to a built-in
// default set when the scrape fails, so Symbols never errors.
type SymbolDirectory struct {
	provider domrepo.SymbolsProvider
	cache    cache.Service
	logger   *xlogger.Logger
	ttl      time.Duration
}

func NewSymbolDirectory(provider domrepo.SymbolsProvider, cacheSvc cache.Service, logger *xlogger.Logger, ttl time.Duration) *SymbolDirectory {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SymbolDirectory{provider: provider, cache: cacheSvc, logger: logger, ttl: ttl}
}

// Symbols returns the full ticker universe.
func (d *SymbolDirectory) Symbols(ctx context.Context) []string {
	var raw string
	if err := d.cache.Get(ctx, symbolsCacheKey, &raw); err == nil {
		var symbols []string
		if err := json.Unmarshal([]byte(raw), &symbols); err == nil && len(symbols) > 0 {
			return symbols
		}
	}

	symbols, err := d.provider.Fetch(ctx)
	if err != nil || len(symbols) == 0 {
		// provider already degrades internally; this is a second guard
		d.logger.Warn("symbol fetch returned nothing", xlogger.Error(err))
		return []string{}
	}

	if buf, err := json.Marshal(symbols); err == nil {
		if err := d.cache.Set(ctx, symbolsCacheKey, string(buf), d.ttl); err != nil {
			d.logger.Warn("symbols cache set failed", xlogger.Error(err))
		}
	}
	return symbols
}

// Search returns universe entries containing the query, case-insensitively.
// An empty query matches everything.
func (d *SymbolDirectory) Search(ctx context.Context, query string) []string {
	q := strings.ToUpper(strings.TrimSpace(query))
	symbols := d.Symbols(ctx)
	if q == "" {
		return symbols
	}
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if strings.Contains(strings.ToUpper(s), q) {
			out = append(out, s)
		}
	}
	return out
}
