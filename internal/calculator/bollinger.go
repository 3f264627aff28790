package calculator

import "math"

// Bands holds Bollinger band series aligned with the input closes.
type Bands struct {
	Upper, Middle, Lower, Percent []float64
}

// Bollinger computes Bollinger bands at k population standard deviations.
// Percent stays NaN where the bands collapse onto each other.
func Bollinger(closes []float64, period int, k float64) Bands {
	mid := SMA(closes, period)
	sd := StdDev(closes, period)

	b := Bands{
		Upper:   nanSlice(len(closes)),
		Middle:  mid,
		Lower:   nanSlice(len(closes)),
		Percent: nanSlice(len(closes)),
	}
	for i := range closes {
		if math.IsNaN(mid[i]) || math.IsNaN(sd[i]) {
			continue
		}
		b.Upper[i] = mid[i] + k*sd[i]
		b.Lower[i] = mid[i] - k*sd[i]
		if width := b.Upper[i] - b.Lower[i]; width != 0 {
			b.Percent[i] = (closes[i] - b.Lower[i]) / width
		}
	}
	return b
}
