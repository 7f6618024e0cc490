package forecast

import "math"

// Seasonal periods in days.
const (
	periodDaily  = 1.0
	periodWeekly = 7.0
	periodYearly = 365.25
)

// fourierTerms appends sin/cos pairs for the given period and order.
func fourierTerms(dst []float64, t, period float64, order int) []float64 {
	for k := 1; k <= order; k++ {
		angle := 2 * math.Pi * float64(k) * t / period
		dst = append(dst, math.Sin(angle), math.Cos(angle))
	}
	return dst
}

// changepointBasis appends the piecewise-linear trend basis: one hinge per
// changepoint, zero before the changepoint and linear after.
func changepointBasis(dst []float64, t float64, changepoints []float64) []float64 {
	for _, cp := range changepoints {
		if t > cp {
			dst = append(dst, t-cp)
		} else {
			dst = append(dst, 0)
		}
	}
	return dst
}

// uniformChangepoints places k changepoints uniformly over the first
// `coverage` fraction of the [0, span] training window.
func uniformChangepoints(k int, span, coverage float64) []float64 {
	if k <= 0 || span <= 0 {
		return nil
	}
	cps := make([]float64, 0, k)
	limit := span * coverage
	for j := 1; j <= k; j++ {
		cps = append(cps, limit*float64(j)/float64(k+1))
	}
	return cps
}

// designRow builds one design-matrix row. tScaled is time normalized to the
// training span (keeps the trend and hinge columns well conditioned), tDays
// is raw days since origin (keeps seasonal periods in calendar units), x is
// the external regressor. Column layout: intercept, trend slope, changepoint
// hinges, daily/weekly/yearly Fourier terms, regressor.
func designRow(tScaled, tDays, x float64, cps []float64, dailyOrder, weeklyOrder, yearlyOrder int) []float64 {
	row := make([]float64, 0, 2+len(cps)+2*(dailyOrder+weeklyOrder+yearlyOrder)+1)
	row = append(row, 1, tScaled)
	row = changepointBasis(row, tScaled, cps)
	row = fourierTerms(row, tDays, periodDaily, dailyOrder)
	row = fourierTerms(row, tDays, periodWeekly, weeklyOrder)
	row = fourierTerms(row, tDays, periodYearly, yearlyOrder)
	row = append(row, x)
	return row
}
