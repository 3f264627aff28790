package calculator

import (
	"math"

	"SwingScanner/internal/model"
)

// ADX computes the average directional index together with +DI and -DI.
// DI values start at index period, ADX at index 2*period-1.
func ADX(bars []model.OHLCV, period int) (adx, dmp, dmn []float64) {
	n := len(bars)
	adx, dmp, dmn = nanSlice(n), nanSlice(n), nanSlice(n)
	if period <= 0 || n < period+1 {
		return adx, dmp, dmn
	}

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	tr := trueRange(bars)
	sTR := wilder(tr, 1, period)
	sPlus := wilder(plusDM, 1, period)
	sMinus := wilder(minusDM, 1, period)

	dx := nanSlice(n)
	for i := period; i < n; i++ {
		if sTR[i] == 0 || math.IsNaN(sTR[i]) {
			continue
		}
		dmp[i] = 100 * sPlus[i] / sTR[i]
		dmn[i] = 100 * sMinus[i] / sTR[i]
		if sum := dmp[i] + dmn[i]; sum != 0 {
			dx[i] = 100 * math.Abs(dmp[i]-dmn[i]) / sum
		}
	}

	adx = wilder(dx, period, period)
	return adx, dmp, dmn
}
