package calculator

// RSI computes the Wilder-smoothed relative strength index for every bar.
// The first value needs period+1 closes. A completely flat window has no
// defined RSI and stays NaN.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := wilder(gains, 1, period)
	avgLoss := wilder(losses, 1, period)
	for i := period; i < len(closes); i++ {
		g, l := avgGain[i], avgLoss[i]
		switch {
		case l == 0 && g == 0:
			continue
		case l == 0:
			out[i] = 100.0
		default:
			out[i] = 100.0 - 100.0/(1.0+g/l)
		}
	}
	return out
}
