package calculator

import (
	"math"

	"SwingScanner/internal/model"
)

// SuperTrend computes the SuperTrend line using an ATR of the given period.
// The line follows the lower band while the trend is up and the upper band
// while it is down. The trend starts up.
func SuperTrend(bars []model.OHLCV, period int, multiplier float64) []float64 {
	out := nanSlice(len(bars))
	if period <= 0 || len(bars) < period+1 {
		return out
	}

	atr := wilder(trueRange(bars), 1, period)

	var finalUpper, finalLower float64
	bullish := true
	for i := period; i < len(bars); i++ {
		if math.IsNaN(atr[i]) {
			return out
		}
		hl2 := (bars[i].High + bars[i].Low) / 2
		basicUpper := hl2 + multiplier*atr[i]
		basicLower := hl2 - multiplier*atr[i]

		if i == period {
			finalUpper, finalLower = basicUpper, basicLower
		} else {
			prevClose := bars[i-1].Close
			if basicUpper < finalUpper || prevClose > finalUpper {
				finalUpper = basicUpper
			}
			if basicLower > finalLower || prevClose < finalLower {
				finalLower = basicLower
			}
			if bullish && bars[i].Close < finalLower {
				bullish = false
			} else if !bullish && bars[i].Close > finalUpper {
				bullish = true
			}
		}

		if bullish {
			out[i] = finalLower
		} else {
			out[i] = finalUpper
		}
	}
	return out
}
