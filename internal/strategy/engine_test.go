package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingScanner/internal/model"
)

func f(v float64) *float64 { return &v }

// fullSignalBars returns a prev/last pair that satisfies every top bucket.
func fullSignalBars() []model.EnrichedBar {
	prev := model.EnrichedBar{
		OHLCV: model.OHLCV{Close: 98, Volume: 1000},
		Indicators: model.IndicatorSet{
			RSI:        f(52),
			MACD:       &model.MACD{MACD: 0.7, Signal: 0.75, Hist: 0.1},
			VolumeMA20: f(1000),
			MFI:        f(60),
			ADX:        &model.ADX{ADX: 28, DMP: 24, DMN: 16},
			SuperTrend: f(94),
			Bollinger:  &model.Bollinger{Upper: 102, Lower: 90, Middle: 96, Percent: 0.67},
		},
	}
	last := model.EnrichedBar{
		OHLCV: model.OHLCV{Close: 100, Volume: 1800},
		Indicators: model.IndicatorSet{
			RSI:        f(57),
			MACD:       &model.MACD{MACD: 1.2, Signal: 0.8, Hist: 0.4},
			VolumeMA20: f(1000),
			MFI:        f(65),
			ADX:        &model.ADX{ADX: 30, DMP: 25, DMN: 15},
			SuperTrend: f(95),
			Bollinger:  &model.Bollinger{Upper: 101.5, Lower: 91.5, Middle: 96.5, Percent: 0.85},
		},
	}
	return []model.EnrichedBar{prev, last}
}

func TestScore_AllBucketsMaxed(t *testing.T) {
	bars := fullSignalBars()
	b := Evaluate(bars)
	assert.Equal(t, model.Breakdown{RSI: 20, MACD: 20, Volume: 20, ADX: 15, SuperTrend: 15, Bollinger: 10}, b)
	assert.Equal(t, 100, Score(bars))
}

func TestScore_OnlyRSIOutOfBand(t *testing.T) {
	bars := []model.EnrichedBar{
		{OHLCV: model.OHLCV{Close: 10}, Indicators: model.IndicatorSet{RSI: f(40)}},
		{OHLCV: model.OHLCV{Close: 10}, Indicators: model.IndicatorSet{RSI: f(42)}},
	}
	assert.Equal(t, 0, Score(bars))
}

func TestScore_NeedsTwoBars(t *testing.T) {
	bars := fullSignalBars()
	assert.Equal(t, 0, Score(nil))
	assert.Equal(t, 0, Score(bars[1:]))
}

func TestScore_AbsentOnPrevZeroesBucket(t *testing.T) {
	bars := fullSignalBars()
	bars[0].Indicators.RSI = nil
	bars[0].Indicators.MACD = nil
	b := Evaluate(bars)
	assert.Zero(t, b.RSI)
	assert.Zero(t, b.MACD)
	assert.Equal(t, 60, Score(bars))
}

func TestScore_NoIndicatorsIsZero(t *testing.T) {
	bars := []model.EnrichedBar{
		{OHLCV: model.OHLCV{Close: 10, Volume: 5}},
		{OHLCV: model.OHLCV{Close: 11, Volume: 5}},
	}
	assert.Equal(t, model.Breakdown{}, Evaluate(bars))
}

func TestScore_Idempotent(t *testing.T) {
	bars := fullSignalBars()
	bars[1].Indicators.RSI = f(63)
	first := Score(bars)
	second := Score(bars)
	assert.Equal(t, first, second)
}

func TestScoreRSI_Boundaries(t *testing.T) {
	tests := []struct {
		rsi  float64
		want int
	}{
		{44.9, 0},
		{45, 10},
		{49.9, 10},
		{50, 15},
		{54.9, 15},
		{55, 20},
		{60, 20},
		{60.1, 15},
		{65, 15},
		{65.1, 10},
		{70, 10},
		{70.1, 0},
	}
	for _, tt := range tests {
		got := scoreRSI(model.IndicatorSet{RSI: f(tt.rsi)}, model.IndicatorSet{RSI: f(50)})
		if got != tt.want {
			t.Errorf("rsi %.1f: expected %d, got %d", tt.rsi, tt.want, got)
		}
	}
}

func TestScoreMACD_Rules(t *testing.T) {
	tests := []struct {
		name       string
		last, prev model.MACD
		want       int
	}{
		{"bullish cross above zero rising hist", model.MACD{MACD: 1.2, Signal: 0.8, Hist: 0.4}, model.MACD{MACD: 0.7, Signal: 0.75, Hist: 0.1}, 20},
		{"cross with equal prev counts", model.MACD{MACD: 1, Signal: 0.5, Hist: 0.5}, model.MACD{MACD: 0.5, Signal: 0.5, Hist: 0}, 20},
		{"cross but falling hist", model.MACD{MACD: 1.2, Signal: 0.8, Hist: 0.1}, model.MACD{MACD: 0.7, Signal: 0.75, Hist: 0.4}, 15},
		{"above signal no cross", model.MACD{MACD: 1.2, Signal: 0.8, Hist: 0.4}, model.MACD{MACD: 1.0, Signal: 0.7, Hist: 0.3}, 15},
		{"above signal below zero", model.MACD{MACD: -0.2, Signal: -0.5, Hist: 0.3}, model.MACD{MACD: -0.6, Signal: -0.5, Hist: -0.1}, 12},
		{"below signal", model.MACD{MACD: 0.2, Signal: 0.5, Hist: -0.3}, model.MACD{MACD: 0.6, Signal: 0.5, Hist: 0.1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last, prev := tt.last, tt.prev
			got := scoreMACD(model.IndicatorSet{MACD: &last}, model.IndicatorSet{MACD: &prev})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreVolume_Rules(t *testing.T) {
	bar := func(vol, ma, mfi float64) model.EnrichedBar {
		return model.EnrichedBar{
			OHLCV:      model.OHLCV{Close: 10, Volume: vol},
			Indicators: model.IndicatorSet{VolumeMA20: f(ma), MFI: f(mfi)},
		}
	}
	tests := []struct {
		name       string
		last, prev model.EnrichedBar
		want       int
	}{
		{"surge with healthy mfi", bar(1600, 1000, 70), bar(1000, 1000, 75), 20},
		{"surge but mfi too hot", bar(1600, 1000, 85), bar(1000, 1000, 80), 15},
		{"rising mfi", bar(1300, 1000, 45), bar(1000, 1000, 40), 15},
		{"above average only", bar(1100, 1000, 45), bar(1000, 1000, 50), 10},
		{"at average", bar(1000, 1000, 60), bar(1000, 1000, 50), 0},
		{"zero moving average", bar(5000, 0, 60), bar(1000, 0, 50), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreVolume(tt.last, tt.prev))
		})
	}
}

func TestVolumeRatio_ZeroAverage(t *testing.T) {
	assert.Equal(t, 0.0, volumeRatio(1000, 0))
	assert.Equal(t, 0.0, volumeRatio(1000, -1))
	assert.Equal(t, 2.0, volumeRatio(1000, 500))
}

func TestScoreADX_Rules(t *testing.T) {
	tests := []struct {
		last, prev model.ADX
		want       int
	}{
		{model.ADX{ADX: 30, DMP: 25, DMN: 15}, model.ADX{ADX: 28}, 15},
		{model.ADX{ADX: 30, DMP: 15, DMN: 25}, model.ADX{ADX: 28}, 0},
		{model.ADX{ADX: 25, DMP: 15, DMN: 25}, model.ADX{ADX: 24}, 10},
		{model.ADX{ADX: 20, DMP: 25, DMN: 15}, model.ADX{ADX: 19}, 10},
		{model.ADX{ADX: 22, DMP: 25, DMN: 15}, model.ADX{ADX: 23}, 0},
		{model.ADX{ADX: 19, DMP: 25, DMN: 15}, model.ADX{ADX: 10}, 0},
	}
	for _, tt := range tests {
		last, prev := tt.last, tt.prev
		got := scoreADX(model.IndicatorSet{ADX: &last}, model.IndicatorSet{ADX: &prev})
		if got != tt.want {
			t.Errorf("adx %+v prev %+v: expected %d, got %d", tt.last, tt.prev, tt.want, got)
		}
	}
}

func TestScoreBollinger_Rules(t *testing.T) {
	bar := func(close float64, bb model.Bollinger) model.EnrichedBar {
		return model.EnrichedBar{OHLCV: model.OHLCV{Close: close}, Indicators: model.IndicatorSet{Bollinger: &bb}}
	}
	prev := bar(100, model.Bollinger{Upper: 110, Lower: 90, Middle: 100, Percent: 0.5})

	assert.Equal(t, 10, scoreBollinger(bar(109, model.Bollinger{Upper: 110, Lower: 90, Middle: 100, Percent: 0.95}), prev))
	// Squeeze: bandwidth 0.06 and close above middle.
	assert.Equal(t, 8, scoreBollinger(bar(100.5, model.Bollinger{Upper: 103, Lower: 97, Middle: 100, Percent: 0.58}), prev))
	assert.Equal(t, 5, scoreBollinger(bar(104, model.Bollinger{Upper: 110, Lower: 90, Middle: 100, Percent: 0.7}), prev))
	assert.Equal(t, 0, scoreBollinger(bar(94, model.Bollinger{Upper: 110, Lower: 90, Middle: 100, Percent: 0.2}), prev))
}

func TestBandwidth_ZeroMiddle(t *testing.T) {
	assert.Equal(t, 1.0, bandwidth(model.Bollinger{Upper: 1, Lower: -1, Middle: 0}))
	assert.InDelta(t, 0.2, bandwidth(model.Bollinger{Upper: 110, Lower: 90, Middle: 100}), 1e-9)
}

func TestScoreSuperTrend(t *testing.T) {
	bars := fullSignalBars()
	assert.Equal(t, 15, scoreSuperTrend(bars[1], bars[0]))

	bars[1].Close = 90
	assert.Equal(t, 0, scoreSuperTrend(bars[1], bars[0]))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-5))
	assert.Equal(t, 100, clamp(130))
	assert.Equal(t, 42, clamp(42))
}

func TestPlan_Rounding(t *testing.T) {
	p := Plan(123.45)
	assert.Equal(t, 122.83, p.Entry)
	assert.Equal(t, 119.75, p.StopLoss)
	assert.Equal(t, 133.33, p.TakeProfit)
}

func TestVerdict(t *testing.T) {
	bars := fullSignalBars()
	r := &model.ScoredResult{Symbol: "THYAO", Trailing: bars}
	lines := Verdict(r)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "healthy trend")
	assert.Contains(t, lines[1], "bullish")
	assert.Contains(t, lines[2], "above")

	assert.Nil(t, Verdict(&model.ScoredResult{Symbol: "EMPTY"}))
}
