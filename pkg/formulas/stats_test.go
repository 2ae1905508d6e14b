package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", []float64{}, 0},
		{"single value", []float64{10000}, 10000},
		{"symmetric values", []float64{9000, 10000, 11000}, 10000},
		{"mixed values", []float64{1, 2, 3, 4}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Mean(tt.data), 1e-9)
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", []float64{}, 0},
		{"single value has no spread", []float64{42}, 0},
		{"identical values", []float64{5, 5, 5, 5}, 0},
		// Sample variance: ((-1)^2 + 0 + 1^2) / (3-1) = 1
		{"sample convention", []float64{1, 2, 3}, 1},
		{"two values", []float64{0, 2}, math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StdDev(tt.data)
			assert.False(t, math.IsNaN(result))
			assert.InDelta(t, tt.expected, result, 1e-9)
		})
	}
}

func TestMedianSorted(t *testing.T) {
	tests := []struct {
		name     string
		sorted   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd length", []float64{1, 3, 9}, 3},
		{"even length averages middle pair", []float64{1, 2, 4, 10}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MedianSorted(tt.sorted))
		})
	}
}

func TestQuantileSorted(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{"lower bound", 0, 1},
		{"5th percentile below first step", 0.05, 1},
		{"median interpolates", 0.5, 5},
		{"95th percentile interpolates", 0.95, 9.5},
		{"upper bound", 1, 10},
		{"clamped below zero", -0.5, 1},
		{"clamped above one", 1.5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, QuantileSorted(sorted, tt.p), 1e-9)
		})
	}

	assert.Equal(t, 0.0, QuantileSorted(nil, 0.5))
}

func TestQuantileSorted_Monotonic(t *testing.T) {
	sorted := []float64{9500, 9700, 9950, 10010, 10020, 10100, 10400, 10800}

	p5 := QuantileSorted(sorted, 0.05)
	median := MedianSorted(sorted)
	p95 := QuantileSorted(sorted, 0.95)

	assert.LessOrEqual(t, p5, median)
	assert.LessOrEqual(t, median, p95)
}

func TestDailyRateFromAnnual(t *testing.T) {
	tests := []struct {
		name   string
		annual float64
	}{
		{"zero", 0},
		{"five percent", 0.05},
		{"negative", -0.5},
		{"very high", 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daily := DailyRateFromAnnual(tt.annual)
			compounded := math.Pow(1+daily, DaysPerYear) - 1
			assert.InDelta(t, tt.annual, compounded, 1e-9)
		})
	}
}

func TestDailyVolatility(t *testing.T) {
	assert.InDelta(t, 0.05/math.Sqrt(365), DailyVolatility(0.05), 1e-12)
	assert.Equal(t, 0.0, DailyVolatility(0))
}
