package calculator

import (
	"math"

	"SwingScanner/internal/model"
)

// SMA computes the simple moving average at every index.
// Indices before the first full window hold NaN.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes the exponential moving average, seeded with the SMA of the first
// full window of valid values. Leading NaN values are skipped.
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}
	start := 0
	for start < len(values) && math.IsNaN(values[start]) {
		start++
	}
	seedAt := start + period - 1
	if seedAt >= len(values) {
		return out
	}

	sum := 0.0
	for i := start; i <= seedAt; i++ {
		sum += values[i]
	}
	out[seedAt] = sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := seedAt + 1; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*k + out[i-1]
	}
	return out
}

// StdDev computes the rolling population standard deviation.
func StdDev(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)
		variance := 0.0
		for _, v := range window {
			d := v - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(period))
	}
	return out
}

// wilder applies Wilder smoothing to values that are valid from index start.
// The first output sits at start+period-1 and is the simple mean of the seed window.
func wilder(values []float64, start, period int) []float64 {
	out := nanSlice(len(values))
	seedAt := start + period - 1
	if period <= 0 || start < 0 || seedAt >= len(values) {
		return out
	}
	sum := 0.0
	for i := start; i <= seedAt; i++ {
		sum += values[i]
	}
	out[seedAt] = sum / float64(period)
	for i := seedAt + 1; i < len(values); i++ {
		out[i] = (out[i-1]*float64(period-1) + values[i]) / float64(period)
	}
	return out
}

// trueRange returns the true range per bar. Index 0 has no previous close and holds NaN.
func trueRange(bars []model.OHLCV) []float64 {
	out := nanSlice(len(bars))
	for i := 1; i < len(bars); i++ {
		prevClose := bars[i-1].Close
		out[i] = math.Max(bars[i].High-bars[i].Low,
			math.Max(math.Abs(bars[i].High-prevClose), math.Abs(bars[i].Low-prevClose)))
	}
	return out
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func extractVolumes(bars []model.OHLCV) []float64 {
	vols := make([]float64, len(bars))
	for i, b := range bars {
		vols[i] = b.Volume
	}
	return vols
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
