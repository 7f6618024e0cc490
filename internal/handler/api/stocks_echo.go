package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"FinCast/internal/domain/models"
	"FinCast/internal/service/ratelimit"
	"FinCast/internal/usecase"
	xhttp "FinCast/pkg/http"
	xlogger "FinCast/pkg/logger"
)

// RateLimitSettings configures the inbound per-IP token bucket applied to
// the expensive endpoints.
type RateLimitSettings struct {
	Enabled      bool
	Capacity     float64
	RefillPerSec float64
}

// StocksEchoHandler exposes the stock data, forecasting, and sentiment API.
type StocksEchoHandler struct {
	logger    *xlogger.Logger
	stocks    *usecase.StocksUseCase
	predictor *usecase.Predictor
	analyzer  *usecase.SentimentAnalyzer
	directory *usecase.SymbolDirectory
	limiter   *ratelimit.Limiter
	rl        RateLimitSettings
}

func NewStocksEchoHandler(
	logger *xlogger.Logger,
	stocks *usecase.StocksUseCase,
	predictor *usecase.Predictor,
	analyzer *usecase.SentimentAnalyzer,
	directory *usecase.SymbolDirectory,
	limiter *ratelimit.Limiter,
	rl RateLimitSettings,
) *StocksEchoHandler {
	return &StocksEchoHandler{
		logger:    logger,
		stocks:    stocks,
		predictor: predictor,
		analyzer:  analyzer,
		directory: directory,
		limiter:   limiter,
		rl:        rl,
	}
}

func (h *StocksEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/stock/:symbol", h.History)
	g.GET("/stock/:symbol/details", h.Details)
	g.GET("/stock/:symbol/predict", h.Predict, h.rateLimit)
	g.GET("/stock/:symbol/sentiment", h.Sentiment, h.rateLimit)
	g.GET("/search", h.Search)
	g.GET("/symbols", h.Symbols)
}

func (h *StocksEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *StocksEchoHandler) History(c echo.Context) error {
	req := &models.StockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := normalizeSymbol(req.Symbol)

	hist, err := h.stocks.History(c.Request().Context(), symbol, req.Period)
	if err != nil {
		h.logger.Error("history failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.OK(c, hist)
}

func (h *StocksEchoHandler) Details(c echo.Context) error {
	req := &models.StockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := normalizeSymbol(req.Symbol)

	quote, err := h.stocks.Details(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Error("details failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.OK(c, quote)
}

func (h *StocksEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := normalizeSymbol(req.Symbol)
	ctx := c.Request().Context()

	name := h.stocks.CompanyName(ctx, symbol)
	res, err := h.predictor.Predict(ctx, symbol, name, req.Period)
	if err != nil {
		h.logger.Error("predict failed",
			xlogger.String("symbol", symbol),
			xlogger.String("period", req.Period),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.OK(c, res)
}

func (h *StocksEchoHandler) Sentiment(c echo.Context) error {
	req := &models.StockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := normalizeSymbol(req.Symbol)
	ctx := c.Request().Context()

	name := h.stocks.CompanyName(ctx, symbol)
	res, err := h.analyzer.ScoreCompany(ctx, name, symbol)
	if err != nil {
		h.logger.Error("sentiment failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.OK(c, res)
}

func (h *StocksEchoHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.OK(c, h.directory.Search(c.Request().Context(), req.Query))
}

func (h *StocksEchoHandler) Symbols(c echo.Context) error {
	return xhttp.OK(c, h.directory.Symbols(c.Request().Context()))
}

func (h *StocksEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.rl.Enabled && h.limiter != nil {
			if !h.limiter.Allow(c.RealIP(), h.rl.Capacity, h.rl.RefillPerSec) {
				return xhttp.TooManyRequestsResponse(c)
			}
		}
		return next(c)
	}
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
