package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"FinCast/internal/domain/models"
	domrepo "FinCast/internal/domain/repository"
	pipecache "FinCast/internal/service/cache"
	"FinCast/internal/services/forecast"
	xhttp "FinCast/pkg/http"
	xlogger "FinCast/pkg/logger"
	"FinCast/pkg/util"
)

// horizonDays maps a user-facing period to the number of future calendar
// days to forecast. Unrecognized periods fall back to one week.
var horizonDays = map[string]int{
	"1w":  7,
	"1mo": 30,
	"3mo": 90,
	"6mo": 180,
}

const defaultHorizon = 7

// PredictorConfig carries the tunables for the forecasting pipeline.
type PredictorConfig struct {
	HistoryPeriod    string        // lookback for training data, e.g. "2y"
	DataTTL          time.Duration // training frame cache
	PredictionTTL    time.Duration // finished forecast cache
	ChangepointScale float64
	IntervalWidth    float64
}

// Predictor builds sentiment-augmented price forecasts. Results and the
// intermediate training frames are cached; concurrent misses for the same
// key are coalesced so the model is fit once.
type Predictor struct {
	market    domrepo.MarketData
	analyzer  *SentimentAnalyzer
	dataCache *pipecache.TTLStore
	predCache *pipecache.TTLStore
	metrics   domrepo.Metrics
	logger    *xlogger.Logger
	cfg       PredictorConfig
	group     singleflight.Group
	now       func() time.Time
}

// NewPredictor wires the pipeline. A nil clock falls back to time.Now; the
// same clock drives both TTL stores so tests can advance time deterministically.
func NewPredictor(
	market domrepo.MarketData,
	analyzer *SentimentAnalyzer,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
	cfg PredictorConfig,
	clock func() time.Time,
) *Predictor {
	if clock == nil {
		clock = time.Now
	}
	if cfg.HistoryPeriod == "" {
		cfg.HistoryPeriod = "2y"
	}
	if cfg.DataTTL <= 0 {
		cfg.DataTTL = 6 * time.Hour
	}
	if cfg.PredictionTTL <= 0 {
		cfg.PredictionTTL = 24 * time.Hour
	}
	return &Predictor{
		market:    market,
		analyzer:  analyzer,
		dataCache: pipecache.NewTTLStore(clock),
		predCache: pipecache.NewTTLStore(clock),
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       clock,
	}
}

// Predict returns a forecast for the symbol over the given period. Cached
// forecasts are returned verbatim until they expire. Failures to assemble
// the training frame or fit the model propagate to the caller.
func (p *Predictor) Predict(ctx context.Context, symbol, companyName, period string) (models.ForecastResult, error) {
	days, ok := horizonDays[period]
	if !ok {
		days = defaultHorizon
	}
	key := fmt.Sprintf("%s_%s", symbol, period)

	if v, ok := p.predCache.Get(key); ok {
		p.metrics.RecordCacheHit("prediction")
		return v.(models.ForecastResult), nil
	}
	p.metrics.RecordCacheMiss("prediction")

	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		// a peer may have filled the cache while we waited on the flight
		if v, ok := p.predCache.Get(key); ok {
			return v.(models.ForecastResult), nil
		}
		res, err := p.buildForecast(ctx, symbol, companyName, period, days)
		if err != nil {
			return nil, err
		}
		p.predCache.Set(key, res, p.cfg.PredictionTTL)
		return res, nil
	})
	if err != nil {
		return models.ForecastResult{}, err
	}
	return v.(models.ForecastResult), nil
}

func (p *Predictor) buildForecast(ctx context.Context, symbol, companyName, period string, days int) (models.ForecastResult, error) {
	start := p.now()

	frame, err := p.trainingFrame(ctx, symbol, companyName)
	if err != nil {
		return models.ForecastResult{}, err
	}

	dates := make([]time.Time, len(frame.Rows))
	closes := make([]float64, len(frame.Rows))
	reg := make([]float64, len(frame.Rows))
	for i, r := range frame.Rows {
		dates[i] = r.Date
		closes[i] = r.Close
		reg[i] = r.Sentiment
	}

	model, err := forecast.Fit(dates, closes, reg, forecast.Options{
		ChangepointScale: p.cfg.ChangepointScale,
		IntervalWidth:    p.cfg.IntervalWidth,
	})
	if err != nil {
		return models.ForecastResult{}, xhttp.InternalErrorf("fit model for %s", symbol).WithError(err)
	}

	last := dates[len(dates)-1]
	future := make([]time.Time, days)
	futureReg := make([]float64, days)
	sentiment := frame.LastSentiment()
	for i := 0; i < days; i++ {
		future[i] = last.AddDate(0, 0, i+1)
		futureReg[i] = sentiment
	}

	points, err := model.Predict(future, futureReg)
	if err != nil {
		return models.ForecastResult{}, fmt.Errorf("predict %s: %w", symbol, err)
	}

	res := models.ForecastResult{
		Dates:           make([]string, len(points)),
		PredictedPrices: make([]float64, len(points)),
		LowerBound:      make([]float64, len(points)),
		UpperBound:      make([]float64, len(points)),
	}
	for i, pt := range points {
		res.Dates[i] = pt.Date.Format("2006-01-02")
		res.PredictedPrices[i] = util.Round2(pt.Yhat)
		res.LowerBound[i] = util.Round2(pt.Lower)
		res.UpperBound[i] = util.Round2(pt.Upper)
	}

	p.metrics.RecordForecast(period)
	p.metrics.RecordLatency("forecast", p.now().Sub(start).Seconds())
	p.logger.Info("forecast built",
		xlogger.String("symbol", symbol),
		xlogger.String("period", period),
		xlogger.Int("days", days),
		xlogger.Int("training_rows", len(frame.Rows)))
	return res, nil
}

// trainingFrame assembles (or reuses) the model input: daily closes over the
// history window with the current company sentiment attached as a constant
// regressor column.
func (p *Predictor) trainingFrame(ctx context.Context, symbol, companyName string) (*models.TrainingFrame, error) {
	key := "frame_" + symbol
	if v, ok := p.dataCache.Get(key); ok {
		p.metrics.RecordCacheHit("data")
		return v.(*models.TrainingFrame), nil
	}
	p.metrics.RecordCacheMiss("data")

	candles, err := p.market.History(ctx, symbol, p.cfg.HistoryPeriod)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	if len(candles) == 0 {
		return nil, xhttp.NotFoundErrorf("no price history for %s", symbol)
	}

	sent, err := p.analyzer.ScoreCompany(ctx, companyName, symbol)
	if err != nil {
		return nil, fmt.Errorf("sentiment for %s: %w", symbol, err)
	}

	frame := &models.TrainingFrame{
		Symbol: symbol,
		Rows:   make([]models.TrainingRow, len(candles)),
	}
	for i, c := range candles {
		frame.Rows[i] = models.TrainingRow{
			Date:      c.Date,
			Close:     c.Close,
			Sentiment: sent.SentimentScore,
		}
	}
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	p.dataCache.Set(key, frame, p.cfg.DataTTL)
	return frame, nil
}
