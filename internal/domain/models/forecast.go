package models

import (
	"fmt"
	"time"
)

// TrainingRow is one historical trading day with the company sentiment score
// attached as a constant regressor value.
type TrainingRow struct {
	Date      time.Time
	Close     float64
	Sentiment float64
}

// TrainingFrame is the prepared model input: chronologically ordered rows
// with no duplicate dates.
type TrainingFrame struct {
	Symbol string
	Rows   []TrainingRow
}

// Validate checks the frame invariants: non-empty, chronological order,
// unique dates.
func (f *TrainingFrame) Validate() error {
	if len(f.Rows) == 0 {
		return fmt.Errorf("training frame for %s is empty", f.Symbol)
	}
	for i := 1; i < len(f.Rows); i++ {
		prev, cur := f.Rows[i-1].Date, f.Rows[i].Date
		if !cur.After(prev) {
			return fmt.Errorf("training frame for %s not strictly ordered at row %d (%s >= %s)",
				f.Symbol, i, prev.Format("2006-01-02"), cur.Format("2006-01-02"))
		}
	}
	return nil
}

// LastSentiment returns the most recent sentiment value, used to hold the
// regressor constant over future dates.
func (f *TrainingFrame) LastSentiment() float64 {
	if len(f.Rows) == 0 {
		return 0
	}
	return f.Rows[len(f.Rows)-1].Sentiment
}

// ForecastResult is a point forecast with interval bounds per future date.
// All slices have equal length, one entry per requested horizon day, dates in
// ISO calendar form.
type ForecastResult struct {
	Dates           []string  `json:"dates"`
	PredictedPrices []float64 `json:"predicted_prices"`
	LowerBound      []float64 `json:"lower_bound"`
	UpperBound      []float64 `json:"upper_bound"`
}
