package forecast

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Options controls the additive model structure. Zero values pick the
// defaults used by the forecasting pipeline.
type Options struct {
	Changepoints     int     // hinge count for the piecewise trend (default 25)
	ChangepointRange float64 // fraction of history where hinges may sit (default 0.8)
	ChangepointScale float64 // trend flexibility; smaller is stiffer (default 0.05)
	DailyOrder       int     // Fourier order for daily seasonality (default 4)
	WeeklyOrder      int     // Fourier order for weekly seasonality (default 3)
	YearlyOrder      int     // Fourier order for yearly seasonality (default 10)
	SeasonalityScale float64 // prior scale on seasonal terms (default 10)
	IntervalWidth    float64 // central interval mass, e.g. 0.8 (default 0.8)
}

func (o *Options) defaults() {
	if o.Changepoints == 0 {
		o.Changepoints = 25
	}
	if o.ChangepointRange == 0 {
		o.ChangepointRange = 0.8
	}
	if o.ChangepointScale == 0 {
		o.ChangepointScale = 0.05
	}
	if o.DailyOrder == 0 {
		o.DailyOrder = 4
	}
	if o.WeeklyOrder == 0 {
		o.WeeklyOrder = 3
	}
	if o.YearlyOrder == 0 {
		o.YearlyOrder = 10
	}
	if o.SeasonalityScale == 0 {
		o.SeasonalityScale = 10
	}
	if o.IntervalWidth == 0 {
		o.IntervalWidth = 0.8
	}
}

// Point is one forecast row.
type Point struct {
	Date  time.Time
	Yhat  float64
	Lower float64
	Upper float64
}

// Model is a fitted additive time-series model: piecewise-linear trend,
// daily/weekly/yearly Fourier seasonality, and one external regressor, solved
// as ridge-regularized least squares.
type Model struct {
	opts   Options
	origin time.Time
	span   float64 // training window length in days
	cps    []float64
	coef   *mat.VecDense
	yMean  float64
	yScale float64
	sigma  float64 // residual std in original units
	z      float64 // normal quantile for the interval width
}

// Fit trains the model on chronologically ordered observations. dates, y and
// regressor must have equal length; at least two rows are required.
func Fit(dates []time.Time, y, regressor []float64, opts Options) (*Model, error) {
	opts.defaults()

	n := len(dates)
	if n < 2 {
		return nil, fmt.Errorf("fit: need at least 2 observations, got %d", n)
	}
	if len(y) != n || len(regressor) != n {
		return nil, fmt.Errorf("fit: length mismatch: dates=%d y=%d regressor=%d", n, len(y), len(regressor))
	}

	origin := dates[0]
	span := daysSince(origin, dates[n-1])
	if span <= 0 {
		return nil, fmt.Errorf("fit: observations span zero days")
	}

	k := opts.Changepoints
	if k > n/2 {
		k = n / 2
	}
	cps := uniformChangepoints(k, span, opts.ChangepointRange)

	// normalize the target so penalties are scale-free
	yMean, yScale := meanStd(y)
	if yScale == 0 {
		yScale = 1
	}

	p := 2 + len(cps) + 2*(opts.DailyOrder+opts.WeeklyOrder+opts.YearlyOrder) + 1
	X := mat.NewDense(n, p, nil)
	yv := mat.NewVecDense(n, nil)
	scaledCps := rescale(cps, span)
	for i := 0; i < n; i++ {
		t := daysSince(origin, dates[i])
		X.SetRow(i, designRow(t/span, t, regressor[i], scaledCps, opts.DailyOrder, opts.WeeklyOrder, opts.YearlyOrder))
		yv.SetVec(i, (y[i]-yMean)/yScale)
	}

	coef, err := solveRidge(X, yv, penalties(p, len(cps), opts))
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	// residual std in original units
	var fitted mat.VecDense
	fitted.MulVec(X, coef)
	var ss float64
	for i := 0; i < n; i++ {
		r := yv.AtVec(i) - fitted.AtVec(i)
		ss += r * r
	}
	sigma := math.Sqrt(ss/float64(n)) * yScale

	return &Model{
		opts:   opts,
		origin: origin,
		span:   span,
		cps:    cps,
		coef:   coef,
		yMean:  yMean,
		yScale: yScale,
		sigma:  sigma,
		z:      normalQuantile(0.5 + opts.IntervalWidth/2),
	}, nil
}

// Predict evaluates the fitted model on the given dates with the given
// regressor values. Interval bounds widen with lead time past the training
// window.
func (m *Model) Predict(dates []time.Time, regressor []float64) ([]Point, error) {
	if len(dates) != len(regressor) {
		return nil, fmt.Errorf("predict: length mismatch: dates=%d regressor=%d", len(dates), len(regressor))
	}

	scaledCps := rescale(m.cps, m.span)
	points := make([]Point, 0, len(dates))
	for i, d := range dates {
		t := daysSince(m.origin, d)
		row := designRow(t/m.span, t, regressor[i], scaledCps, m.opts.DailyOrder, m.opts.WeeklyOrder, m.opts.YearlyOrder)

		var yhat float64
		for j, v := range row {
			yhat += v * m.coef.AtVec(j)
		}
		yhat = yhat*m.yScale + m.yMean

		// uncertainty grows with distance past the last training day
		lead := t - m.span
		if lead < 0 {
			lead = 0
		}
		width := m.z * m.sigma * math.Sqrt(1+lead/m.span)
		points = append(points, Point{Date: d, Yhat: yhat, Lower: yhat - width, Upper: yhat + width})
	}
	return points, nil
}

// Sigma returns the in-sample residual standard deviation.
func (m *Model) Sigma() float64 { return m.sigma }

func penalties(p, cpCount int, opts Options) []float64 {
	lam := make([]float64, p)
	seasonal := 1 / (opts.SeasonalityScale * opts.SeasonalityScale)
	cp := 1 / (opts.ChangepointScale * opts.ChangepointScale)

	lam[0] = 1e-8 // intercept, effectively free
	lam[1] = 1e-8 // trend slope, effectively free
	i := 2
	for j := 0; j < cpCount; j++ {
		lam[i] = cp
		i++
	}
	for ; i < p-1; i++ {
		lam[i] = seasonal
	}
	lam[p-1] = seasonal // external regressor
	return lam
}

// solveRidge solves (X'X + diag(lam)) b = X'y.
func solveRidge(X *mat.Dense, y *mat.VecDense, lam []float64) (*mat.VecDense, error) {
	_, p := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	sym := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			v := xtx.At(i, j)
			if i == j {
				v += lam[i]
			}
			sym.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, fmt.Errorf("normal equations not positive definite")
	}

	xty := mat.NewVecDense(p, nil)
	xty.MulVec(X.T(), y)

	coef := mat.NewVecDense(p, nil)
	if err := chol.SolveVecTo(coef, xty); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	return coef, nil
}

func daysSince(origin, d time.Time) float64 {
	return d.Sub(origin).Hours() / 24
}

func meanStd(xs []float64) (mean, std float64) {
	n := float64(len(xs))
	for _, v := range xs {
		mean += v
	}
	mean /= n
	var ss float64
	for _, v := range xs {
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / n)
}

func rescale(xs []float64, span float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = v / span
	}
	return out
}

// normalQuantile approximates the standard normal inverse CDF
// (Beasley-Springer-Moro).
func normalQuantile(q float64) float64 {
	a := [...]float64{2.50662823884, -18.61500062529, 41.39119773534, -25.44106049637}
	b := [...]float64{-8.47351093090, 23.08336743743, -21.06224101826, 3.13082909833}
	c := [...]float64{0.3374754822726147, 0.9761690190917186, 0.1607979714918209,
		0.0276438810333863, 0.0038405729373609, 0.0003951896511919,
		0.0000321767881768, 0.0000002888167364, 0.0000003960315187}

	x := q - 0.5
	if math.Abs(x) < 0.42 {
		r := x * x
		return x * (((a[3]*r+a[2])*r+a[1])*r + a[0]) /
			((((b[3]*r+b[2])*r+b[1])*r+b[0])*r + 1)
	}
	r := q
	if x > 0 {
		r = 1 - q
	}
	r = math.Log(-math.Log(r))
	v := c[0]
	pow := 1.0
	for i := 1; i < len(c); i++ {
		pow *= r
		v += c[i] * pow
	}
	if x < 0 {
		return -v
	}
	return v
}
