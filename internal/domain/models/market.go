package models

import "time"

// Candle is one daily OHLCV bar.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote is a snapshot of a company's current price and fundamentals.
// Zero values signal that the upstream fetch failed; callers treat this as a
// defined default, not an error.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	Industry         string  `json:"industry"`
	CurrentPrice     float64 `json:"current_price"`
	MarketCap        float64 `json:"market_cap"`
	PERatio          float64 `json:"pe_ratio"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low"`
	Volume           float64 `json:"volume"`
	AvgVolume        float64 `json:"avg_volume"`
}

// StockHistory is the wire shape of the history endpoint: OHLC rows for
// candlestick charts plus parallel date/price arrays for line charts.
// Timestamps are unix milliseconds.
type StockHistory struct {
	OHLC   [][]float64 `json:"ohlc"`
	Volume [][]float64 `json:"volume"`
	Dates  []string    `json:"dates"`
	Prices []float64   `json:"prices"`
}

// HistoryFromCandles converts candles into the chart-oriented wire shape.
func HistoryFromCandles(candles []Candle) StockHistory {
	h := StockHistory{
		OHLC:   make([][]float64, 0, len(candles)),
		Volume: make([][]float64, 0, len(candles)),
		Dates:  make([]string, 0, len(candles)),
		Prices: make([]float64, 0, len(candles)),
	}
	for _, c := range candles {
		ms := float64(c.Date.UnixMilli())
		h.OHLC = append(h.OHLC, []float64{ms, c.Open, c.High, c.Low, c.Close})
		h.Volume = append(h.Volume, []float64{ms, c.Volume})
		h.Dates = append(h.Dates, c.Date.Format("2006-01-02"))
		h.Prices = append(h.Prices, c.Close)
	}
	return h
}
