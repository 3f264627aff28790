package calculator

import "SwingScanner/internal/model"

// MFI computes the money flow index over the last `period` typical-price changes.
func MFI(bars []model.OHLCV, period int) []float64 {
	out := nanSlice(len(bars))
	if period <= 0 || len(bars) < period+1 {
		return out
	}

	tp := make([]float64, len(bars))
	for i, b := range bars {
		tp[i] = (b.High + b.Low + b.Close) / 3
	}

	for i := period; i < len(bars); i++ {
		var pos, neg float64
		for j := i - period + 1; j <= i; j++ {
			flow := tp[j] * bars[j].Volume
			switch {
			case tp[j] > tp[j-1]:
				pos += flow
			case tp[j] < tp[j-1]:
				neg += flow
			}
		}
		switch {
		case pos == 0 && neg == 0:
			continue
		case neg == 0:
			out[i] = 100.0
		default:
			out[i] = 100.0 - 100.0/(1.0+pos/neg)
		}
	}
	return out
}
