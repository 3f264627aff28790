package strategy

import (
	"fmt"

	"SwingScanner/internal/model"
)

// Verdict summarises the latest bar of a result as short human-readable lines.
// Indicators that are absent on the latest bar are skipped.
func Verdict(r *model.ScoredResult) []string {
	bar, ok := r.Latest()
	if !ok {
		return nil
	}
	ind := bar.Indicators

	var lines []string
	if ind.RSI != nil {
		state := "healthy trend"
		if *ind.RSI > 70 {
			state = "nearing overbought"
		}
		lines = append(lines, fmt.Sprintf("RSI %.1f, %s", *ind.RSI, state))
	}
	if ind.MACD != nil {
		if ind.MACD.MACD > ind.MACD.Signal {
			lines = append(lines, "MACD signal cross: bullish momentum")
		} else {
			lines = append(lines, "MACD signal cross: bearish/neutral")
		}
	}
	if ind.SuperTrend != nil {
		side := "below"
		if bar.Close > *ind.SuperTrend {
			side = "above"
		}
		lines = append(lines, fmt.Sprintf("Price %s SuperTrend support", side))
	}
	return lines
}
