package strategy

import "SwingScanner/internal/model"

// scoreRSI rewards momentum that is strong but not yet overbought.
// Max: 20
func scoreRSI(last, prev model.IndicatorSet) int {
	if last.RSI == nil || prev.RSI == nil {
		return 0
	}
	rsi := *last.RSI
	switch {
	case rsi >= 55 && rsi <= 60:
		return 20
	case (rsi >= 50 && rsi < 55) || (rsi > 60 && rsi <= 65):
		return 15
	case (rsi >= 45 && rsi < 50) || (rsi > 65 && rsi <= 70):
		return 10
	default:
		return 0
	}
}

// scoreMACD rewards a fresh bullish signal-line cross above zero.
// Max: 20
func scoreMACD(last, prev model.IndicatorSet) int {
	if last.MACD == nil || prev.MACD == nil {
		return 0
	}
	m, p := *last.MACD, *prev.MACD
	bullishCross := m.MACD > m.Signal && p.MACD <= p.Signal
	switch {
	case bullishCross && m.MACD > 0 && m.Hist > p.Hist:
		return 20
	case m.MACD > m.Signal && m.MACD > 0:
		return 15
	case m.MACD > m.Signal:
		return 12
	default:
		return 0
	}
}

// scoreVolume rewards above-average volume backed by money flow.
// Max: 20
func scoreVolume(last, prev model.EnrichedBar) int {
	li, pi := last.Indicators, prev.Indicators
	if li.VolumeMA20 == nil || pi.VolumeMA20 == nil || li.MFI == nil || pi.MFI == nil {
		return 0
	}
	ratio := volumeRatio(last.Volume, *li.VolumeMA20)
	mfi := *li.MFI
	switch {
	case ratio > 1.5 && mfi >= 50 && mfi <= 80:
		return 20
	case ratio > 1.2 && mfi > *pi.MFI:
		return 15
	case ratio > 1.0:
		return 10
	default:
		return 0
	}
}

// scoreADX rewards an established or strengthening uptrend.
// Max: 15
func scoreADX(last, prev model.IndicatorSet) int {
	if last.ADX == nil || prev.ADX == nil {
		return 0
	}
	a, p := *last.ADX, *prev.ADX
	switch {
	case a.ADX > 25 && a.DMP > a.DMN:
		return 15
	case a.ADX >= 20 && a.ADX <= 25 && a.ADX > p.ADX:
		return 10
	default:
		return 0
	}
}

// scoreSuperTrend rewards a close above the SuperTrend line.
// Max: 15
func scoreSuperTrend(last, prev model.EnrichedBar) int {
	if last.Indicators.SuperTrend == nil || prev.Indicators.SuperTrend == nil {
		return 0
	}
	if last.Close > *last.Indicators.SuperTrend {
		return 15
	}
	return 0
}

// scoreBollinger rewards closes in the upper band or breaking out of a squeeze.
// Max: 10
func scoreBollinger(last, prev model.EnrichedBar) int {
	if last.Indicators.Bollinger == nil || prev.Indicators.Bollinger == nil {
		return 0
	}
	bb := *last.Indicators.Bollinger
	switch {
	case bb.Percent > 0.8:
		return 10
	case bandwidth(bb) < 0.1 && last.Close > bb.Middle:
		return 8
	case bb.Percent >= 0.5 && bb.Percent <= 0.8:
		return 5
	default:
		return 0
	}
}

// volumeRatio is 0 when the moving average is not positive.
func volumeRatio(volume, ma float64) float64 {
	if ma <= 0 {
		return 0
	}
	return volume / ma
}

// bandwidth is 1 when the middle band is not positive.
func bandwidth(bb model.Bollinger) float64 {
	if bb.Middle <= 0 {
		return 1
	}
	return (bb.Upper - bb.Lower) / bb.Middle
}
