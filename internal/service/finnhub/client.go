package finnhub

import (
	"context"
	"sort"
	"strconv"
	"time"

	"FinCast/internal/domain/models"
	drepo "FinCast/internal/domain/repository"
	xhttp "FinCast/pkg/http"
	xlogger "FinCast/pkg/logger"
	"FinCast/pkg/util"
)

// Client implements a MarketData source backed by the Finnhub REST API.
type Client struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
	logger  *xlogger.Logger
	metrics drepo.Metrics
	now     func() time.Time
}

// New creates a new Finnhub MarketData source.
func New(apiKey, baseURL string, timeout time.Duration, logger *xlogger.Logger, metrics drepo.Metrics) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

var _ drepo.MarketData = (*Client)(nil)

type fhCandles struct {
	Close  []float64 `json:"c"`
	High   []float64 `json:"h"`
	Low    []float64 `json:"l"`
	Open   []float64 `json:"o"`
	Time   []int64   `json:"t"` // unix seconds
	Volume []float64 `json:"v"`
	Status string    `json:"s"`
}

type fhProfile struct {
	Name      string  `json:"name"`
	Industry  string  `json:"finnhubIndustry"`
	MarketCap float64 `json:"marketCapitalization"` // millions
}

type fhQuote struct {
	Current float64 `json:"c"`
	High    float64 `json:"h"`
	Low     float64 `json:"l"`
	Open    float64 `json:"o"`
	Prev    float64 `json:"pc"`
}

type fhMetric struct {
	Metric struct {
		High52            float64 `json:"52WeekHigh"`
		Low52             float64 `json:"52WeekLow"`
		PE                float64 `json:"peBasicExclExtraTTM"`
		AvgVolume10Day    float64 `json:"10DayAverageTradingVolume"` // millions of shares
		AvgVolume3MonthMM float64 `json:"3MonthAverageTradingVolume"`
	} `json:"metric"`
}

func (c *Client) get(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	params["token"] = []string{c.apiKey}
	return c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		QueryParams: params,
	}, dest)
}

// History returns daily candles covering the lookback period, oldest first.
// Upstream failures degrade to an empty slice.
func (c *Client) History(ctx context.Context, symbol, period string) ([]models.Candle, error) {
	end := c.now()
	start := util.PeriodStart(end, period)

	var raw fhCandles
	err := c.get(ctx, "/stock/candle", map[string][]string{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {strconv.FormatInt(start.Unix(), 10)},
		"to":         {strconv.FormatInt(end.Unix(), 10)},
	}, &raw)
	if err != nil {
		c.metrics.RecordProviderError("finnhub")
		c.logger.Warn("finnhub history fetch failed",
			xlogger.String("symbol", symbol), xlogger.Error(err))
		return []models.Candle{}, nil
	}
	if raw.Status != "ok" {
		c.logger.Warn("finnhub history empty",
			xlogger.String("symbol", symbol), xlogger.String("status", raw.Status))
		return []models.Candle{}, nil
	}

	n := len(raw.Time)
	if len(raw.Close) < n {
		n = len(raw.Close)
	}
	candles := make([]models.Candle, 0, n)
	seen := make(map[int64]bool, n)
	for i := 0; i < n; i++ {
		day := raw.Time[i] - raw.Time[i]%86400
		if seen[day] {
			continue
		}
		seen[day] = true
		candles = append(candles, models.Candle{
			Date:   time.Unix(raw.Time[i], 0).UTC().Truncate(24 * time.Hour),
			Open:   at(raw.Open, i),
			High:   at(raw.High, i),
			Low:    at(raw.Low, i),
			Close:  raw.Close[i],
			Volume: at(raw.Volume, i),
		})
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Date.Before(candles[j].Date) })
	return candles, nil
}

// Snapshot merges profile, quote, and basic financials into one view.
// Failed sub-requests leave their fields zeroed.
func (c *Client) Snapshot(ctx context.Context, symbol string) (models.Quote, error) {
	q := models.Quote{Symbol: symbol, Sector: "N/A", Industry: "N/A"}
	params := func() map[string][]string { return map[string][]string{"symbol": {symbol}} }

	var profile fhProfile
	if err := c.get(ctx, "/stock/profile2", params(), &profile); err != nil {
		c.metrics.RecordProviderError("finnhub")
		c.logger.Warn("finnhub profile fetch failed",
			xlogger.String("symbol", symbol), xlogger.Error(err))
	} else {
		q.Name = profile.Name
		if profile.Industry != "" {
			q.Industry = profile.Industry
		}
		q.MarketCap = profile.MarketCap * 1e6
	}

	var quote fhQuote
	if err := c.get(ctx, "/quote", params(), &quote); err != nil {
		c.metrics.RecordProviderError("finnhub")
		c.logger.Warn("finnhub quote fetch failed",
			xlogger.String("symbol", symbol), xlogger.Error(err))
	} else {
		q.CurrentPrice = quote.Current
	}

	var metric fhMetric
	p := params()
	p["metric"] = []string{"all"}
	if err := c.get(ctx, "/stock/metric", p, &metric); err != nil {
		c.metrics.RecordProviderError("finnhub")
		c.logger.Warn("finnhub metric fetch failed",
			xlogger.String("symbol", symbol), xlogger.Error(err))
	} else {
		q.FiftyTwoWeekHigh = metric.Metric.High52
		q.FiftyTwoWeekLow = metric.Metric.Low52
		q.PERatio = metric.Metric.PE
		q.AvgVolume = metric.Metric.AvgVolume10Day * 1e6
		q.Volume = metric.Metric.AvgVolume10Day * 1e6
	}

	if q.Name == "" {
		q.Name = symbol
	}
	return q, nil
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

// SetClock overrides the time source, used by tests.
func (c *Client) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

// SetBaseURL points the client at a different endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }
