package di

import (
	domrepo "FinCast/internal/domain/repository"
	domsvc "FinCast/internal/domain/service"
	"FinCast/internal/handler/api"
	"FinCast/internal/service/finnhub"
	"FinCast/internal/service/ratelimit"
	"FinCast/internal/service/tavily"
	"FinCast/internal/service/wikipedia"
	"FinCast/internal/services/analytics"
	"FinCast/internal/usecase"
	"FinCast/pkg/cache"
	"FinCast/pkg/config"
	"FinCast/pkg/logger"
	"FinCast/pkg/metrics"
	"FinCast/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the Finnhub market data client.
func ProvideMarketData(cfg *config.Config, l *logger.Logger, m domrepo.Metrics) domrepo.MarketData {
	return finnhub.New(cfg.Finnhub.APIKey, cfg.Finnhub.BaseURL, cfg.Finnhub.Timeout, l, m)
}

// ProvideNewsProvider creates the Tavily news client. Fails fast when the
// credential is missing.
func ProvideNewsProvider(cfg *config.Config, l *logger.Logger, m domrepo.Metrics) (domrepo.NewsProvider, error) {
	return tavily.New(cfg.Tavily.APIKey, cfg.Tavily.BaseURL, cfg.Tavily.Timeout, l, m)
}

// ProvideTextScorer creates the HTTP client for the text-classification
// inference service.
func ProvideTextScorer(cfg *config.Config) domsvc.TextScorer {
	return analytics.NewHTTPTextScorer(cfg.Sentiment.ServiceURL, cfg.Sentiment.Timeout, cfg.Sentiment.MaxTokens)
}

// ProvideSymbolsProvider creates the Wikipedia symbol universe scraper.
func ProvideSymbolsProvider(cfg *config.Config, l *logger.Logger, m domrepo.Metrics) domrepo.SymbolsProvider {
	return wikipedia.New(cfg.Symbols.SourceURL, cfg.Finnhub.Timeout, l, m)
}

// ProvideCacheService builds the symbols/quote cache: layered memory+redis
// when redis is configured, in-process memory otherwise. A redis connection
// failure degrades to memory with a warning.
func ProvideCacheService(cfg *config.Config, l *logger.Logger) cache.Service {
	if cfg.Symbols.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Symbols.Redis.Host),
			cache.WithRedisPort(cfg.Symbols.Redis.Port),
			cache.WithRedisPassword(cfg.Symbols.Redis.Password),
			cache.WithRedisDB(cfg.Symbols.Redis.DB),
		)
		if err != nil {
			l.Warn("redis unavailable, using memory cache", logger.Error(err))
		} else {
			return cache.NewLayeredCache(rc)
		}
	}
	return cache.NewMemoryCache()
}

// ProvideSentimentAnalyzer creates the article scoring pipeline.
func ProvideSentimentAnalyzer(
	news domrepo.NewsProvider,
	scorer domsvc.TextScorer,
	m domrepo.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.SentimentAnalyzer {
	return usecase.NewSentimentAnalyzer(news, scorer, m, l, cfg.Tavily.MaxArticles)
}

// ProvidePredictor creates the forecasting pipeline.
func ProvidePredictor(
	market domrepo.MarketData,
	analyzer *usecase.SentimentAnalyzer,
	m domrepo.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Predictor {
	return usecase.NewPredictor(market, analyzer, m, l, usecase.PredictorConfig{
		HistoryPeriod:    cfg.Forecast.HistoryPeriod,
		DataTTL:          cfg.Forecast.DataCacheTTL,
		PredictionTTL:    cfg.Forecast.PredictionTTL,
		ChangepointScale: cfg.Forecast.ChangepointScale,
		IntervalWidth:    cfg.Forecast.IntervalWidth,
	}, nil)
}

// ProvideStocksUseCase creates the history/details use case.
func ProvideStocksUseCase(
	market domrepo.MarketData,
	cacheSvc cache.Service,
	m domrepo.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.StocksUseCase {
	return usecase.NewStocksUseCase(market, cacheSvc, m, l, cfg.Symbols.CacheTTL)
}

// ProvideSymbolDirectory creates the symbol universe use case.
func ProvideSymbolDirectory(
	provider domrepo.SymbolsProvider,
	cacheSvc cache.Service,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.SymbolDirectory {
	return usecase.NewSymbolDirectory(provider, cacheSvc, l, cfg.Symbols.CacheTTL)
}

// ProvideRateLimiter creates the inbound per-IP token bucket.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideHandler creates the API handler.
func ProvideHandler(
	l *logger.Logger,
	stocks *usecase.StocksUseCase,
	predictor *usecase.Predictor,
	analyzer *usecase.SentimentAnalyzer,
	directory *usecase.SymbolDirectory,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
) *api.StocksEchoHandler {
	return api.NewStocksEchoHandler(l, stocks, predictor, analyzer, directory, limiter, api.RateLimitSettings{
		Enabled:      cfg.RateLimit.Enabled,
		Capacity:     cfg.RateLimit.Capacity,
		RefillPerSec: cfg.RateLimit.RefillPerSec,
	})
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *logger.Logger, h *api.StocksEchoHandler) *server.App {
	return server.New(cfg, l, h)
}
