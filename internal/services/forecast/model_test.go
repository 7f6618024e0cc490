package forecast

import (
	"math"
	"testing"
	"time"
)

func tradingDays(start time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	d := start
	for len(dates) < n {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			dates = append(dates, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return dates
}

func calendarDays(start time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}

func constant(v float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = v
	}
	return xs
}

func TestFitFlatSeries(t *testing.T) {
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	dates := tradingDays(start, 500)
	y := constant(100.0, len(dates))
	reg := constant(0.5, len(dates))

	m, err := Fit(dates, y, reg, Options{})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	future := calendarDays(dates[len(dates)-1], 7)
	points, err := m.Predict(future, constant(0.5, 7))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	for _, p := range points {
		if math.Abs(p.Yhat-100.0) > 1.0 {
			t.Errorf("flat series forecast drifted: %s -> %.4f", p.Date.Format("2006-01-02"), p.Yhat)
		}
		if p.Lower > p.Yhat || p.Yhat > p.Upper {
			t.Errorf("interval does not bracket point forecast: [%.4f, %.4f] around %.4f",
				p.Lower, p.Upper, p.Yhat)
		}
	}
}

func TestFitRecoversLinearTrend(t *testing.T) {
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	dates := tradingDays(start, 400)
	y := make([]float64, len(dates))
	for i, d := range dates {
		y[i] = 50 + 0.2*d.Sub(start).Hours()/24
	}
	reg := constant(0.5, len(dates))

	m, err := Fit(dates, y, reg, Options{})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	future := calendarDays(dates[len(dates)-1], 30)
	points, err := m.Predict(future, constant(0.5, 30))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	for _, p := range points {
		want := 50 + 0.2*p.Date.Sub(start).Hours()/24
		if math.Abs(p.Yhat-want) > 0.05*want {
			t.Errorf("trend extrapolation off at %s: got %.2f want %.2f",
				p.Date.Format("2006-01-02"), p.Yhat, want)
		}
	}
}

func TestIntervalsWidenWithLead(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := tradingDays(start, 300)
	y := make([]float64, len(dates))
	for i := range y {
		// deterministic wiggle so sigma is non-zero
		y[i] = 100 + 3*math.Sin(float64(i)/5)
	}
	reg := constant(0.3, len(dates))

	m, err := Fit(dates, y, reg, Options{})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if m.Sigma() <= 0 {
		t.Fatal("expected non-zero residual sigma")
	}

	future := calendarDays(dates[len(dates)-1], 90)
	points, err := m.Predict(future, constant(0.3, 90))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	first := points[0].Upper - points[0].Lower
	last := points[len(points)-1].Upper - points[len(points)-1].Lower
	if last <= first {
		t.Errorf("expected widening intervals, first=%.4f last=%.4f", first, last)
	}
}

func TestFitRejectsTinyInput(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := Fit([]time.Time{start}, []float64{1}, []float64{0}, Options{}); err == nil {
		t.Fatal("expected error for single observation")
	}
	if _, err := Fit(tradingDays(start, 5), constant(1, 5), constant(0, 4), Options{}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}
