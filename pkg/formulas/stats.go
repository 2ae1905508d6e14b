// Package formulas holds the statistical helpers used to summarise simulated
// outcomes and to convert annual yield figures into daily parameters.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DaysPerYear is the calendar-day year used for on-chain yields, which accrue
// every day rather than on trading days only.
const DaysPerYear = 365

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (n-1 denominator).
// Fewer than two values have no spread and return 0.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// MedianSorted returns the median of an ascending slice, averaging the two
// middle elements for even lengths.
func MedianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// QuantileSorted returns the linearly interpolated p-quantile of an ascending
// slice. p is clamped to [0, 1].
func QuantileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// DailyRateFromAnnual converts an annual compounded rate (0.05 for 5% APY)
// into the equivalent daily rate: (1+annual)^(1/365) - 1
func DailyRateFromAnnual(annual float64) float64 {
	return math.Pow(1+annual, 1.0/DaysPerYear) - 1
}

// DailyVolatility converts annual volatility to daily: annual / sqrt(365)
func DailyVolatility(annual float64) float64 {
	return annual / math.Sqrt(DaysPerYear)
}
