package strategy

import "SwingScanner/internal/model"

// MaxScore is the highest composite score a symbol can reach.
const MaxScore = 100

// Evaluate scores the last two enriched bars bucket by bucket.
// Fewer than two bars yield an empty breakdown.
func Evaluate(bars []model.EnrichedBar) model.Breakdown {
	if len(bars) < 2 {
		return model.Breakdown{}
	}
	last, prev := bars[len(bars)-1], bars[len(bars)-2]

	return model.Breakdown{
		RSI:        scoreRSI(last.Indicators, prev.Indicators),
		MACD:       scoreMACD(last.Indicators, prev.Indicators),
		Volume:     scoreVolume(last, prev),
		ADX:        scoreADX(last.Indicators, prev.Indicators),
		SuperTrend: scoreSuperTrend(last, prev),
		Bollinger:  scoreBollinger(last, prev),
	}
}

// Score returns the composite score of the series, clamped to [0, MaxScore].
func Score(bars []model.EnrichedBar) int {
	return ScoreOf(Evaluate(bars))
}

// ScoreOf turns a breakdown into the clamped composite score.
func ScoreOf(b model.Breakdown) int {
	return clamp(b.Total())
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
