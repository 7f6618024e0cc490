//go:build wireinject
// +build wireinject

package di

import (
	"FinCast/pkg/config"
	"FinCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// External clients
		ProvideMarketData,
		ProvideNewsProvider,
		ProvideTextScorer,
		ProvideSymbolsProvider,
		ProvideCacheService,
		ProvideRateLimiter,

		// Use cases
		ProvideSentimentAnalyzer,
		ProvidePredictor,
		ProvideStocksUseCase,
		ProvideSymbolDirectory,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
