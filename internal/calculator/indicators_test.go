package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingScanner/internal/model"
	"SwingScanner/internal/strategy"
)

var base = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

// waveBars builds a non-degenerate series: an uptrend with a sine swing.
func waveBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 100 + 5*math.Sin(float64(i)/3) + float64(i)*0.2
		bars[i] = model.OHLCV{
			Time:   base.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000 + 100*math.Cos(float64(i)/2),
		}
	}
	return bars
}

func flatBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{Time: base.AddDate(0, 0, i), Open: 10, High: 10, Low: 10, Close: 10, Volume: 500}
	}
	return bars
}

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, []float64{2, 3, 4}, out[2:])
}

func TestEMA_SeedAndLeadingNaN(t *testing.T) {
	out := EMA([]float64{1, 2, 3, 4, 5}, 3)
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, []float64{2, 3, 4}, out[2:])

	out = EMA([]float64{math.NaN(), 2, 4, 6}, 2)
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, 3.0, out[2])
	assert.InDelta(t, 5.0, out[3], 1e-9)

	out = EMA([]float64{1, 2}, 3)
	assert.True(t, math.IsNaN(out[1]))
}

func TestRSI_WarmUpAndKnownValues(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 10
		if i%2 == 1 {
			closes[i] = 11
		}
	}
	rsi := RSI(closes, 14)
	assert.True(t, math.IsNaN(rsi[13]))
	assert.InDelta(t, 50.0, rsi[14], 1e-9)

	rising := make([]float64, 20)
	for i := range rising {
		rising[i] = float64(10 + i)
	}
	assert.Equal(t, 100.0, RSI(rising, 14)[19])

	flat := make([]float64, 20)
	for i := range flat {
		flat[i] = 10
	}
	for _, v := range RSI(flat, 14) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestMACD_WarmUp(t *testing.T) {
	closes := extractCloses(waveBars(40))
	line, sig, hist := MACD(closes, 12, 26, 9)

	assert.True(t, math.IsNaN(line[24]))
	assert.False(t, math.IsNaN(line[25]))
	assert.True(t, math.IsNaN(sig[32]))
	assert.False(t, math.IsNaN(sig[33]))
	assert.True(t, math.IsNaN(hist[32]))
	assert.InDelta(t, line[39]-sig[39], hist[39], 1e-12)
}

func TestMFI(t *testing.T) {
	bars := waveBars(20)
	for i := range bars {
		// Strictly rising typical price: all money flow is positive.
		bars[i].High = float64(20 + i)
		bars[i].Low = float64(18 + i)
		bars[i].Close = float64(19 + i)
	}
	mfi := MFI(bars, 14)
	assert.True(t, math.IsNaN(mfi[13]))
	assert.Equal(t, 100.0, mfi[14])

	for _, v := range MFI(flatBars(20), 14) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestADX_WarmUpAndDirection(t *testing.T) {
	bars := make([]model.OHLCV, 35)
	for i := range bars {
		p := float64(50 + 2*i)
		bars[i] = model.OHLCV{High: p + 1, Low: p - 1, Close: p, Volume: 100}
	}
	adx, dmp, dmn := ADX(bars, 14)

	assert.True(t, math.IsNaN(dmp[13]))
	assert.False(t, math.IsNaN(dmp[14]))
	assert.True(t, math.IsNaN(adx[26]))
	require.False(t, math.IsNaN(adx[27]))
	assert.Greater(t, dmp[34], dmn[34])
	assert.Equal(t, 0.0, dmn[34])
	assert.InDelta(t, 100.0, adx[34], 1e-9)
}

func TestADX_FlatIsAbsent(t *testing.T) {
	adx, dmp, _ := ADX(flatBars(35), 14)
	for i := range adx {
		assert.True(t, math.IsNaN(adx[i]))
		assert.True(t, math.IsNaN(dmp[i]))
	}
}

func TestSuperTrend_Uptrend(t *testing.T) {
	bars := make([]model.OHLCV, 30)
	for i := range bars {
		p := float64(100 + i)
		bars[i] = model.OHLCV{High: p + 1, Low: p - 1, Close: p}
	}
	st := SuperTrend(bars, 7, 3)
	assert.True(t, math.IsNaN(st[6]))
	for i := 7; i < len(bars); i++ {
		require.False(t, math.IsNaN(st[i]))
		assert.Less(t, st[i], bars[i].Close)
	}
}

func TestSuperTrend_FlipsOnBreakdown(t *testing.T) {
	bars := make([]model.OHLCV, 30)
	for i := range bars {
		p := float64(100 + i)
		if i >= 20 {
			p = float64(100 + 20 - (i-20)*6)
		}
		bars[i] = model.OHLCV{High: p + 1, Low: p - 1, Close: p}
	}
	st := SuperTrend(bars, 7, 3)
	last := len(bars) - 1
	assert.Greater(t, st[last], bars[last].Close)
}

func TestBollinger(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	bb := Bollinger(closes, 20, 2)
	sd := math.Sqrt(399.0 / 12.0)
	assert.InDelta(t, 10.5, bb.Middle[19], 1e-9)
	assert.InDelta(t, 10.5+2*sd, bb.Upper[19], 1e-9)
	assert.InDelta(t, 10.5-2*sd, bb.Lower[19], 1e-9)
	assert.InDelta(t, (20-(10.5-2*sd))/(4*sd), bb.Percent[19], 1e-9)
	assert.True(t, math.IsNaN(bb.Middle[18]))

	flat := Bollinger(extractCloses(flatBars(20)), 20, 2)
	assert.Equal(t, 10.0, flat.Middle[19])
	assert.True(t, math.IsNaN(flat.Percent[19]))
}

func TestEnrich_WarmUpPresence(t *testing.T) {
	bars := Enrich(&model.Series{Symbol: "TEST", Bars: waveBars(40)})
	require.Len(t, bars, 40)

	ind := func(i int) model.IndicatorSet { return bars[i].Indicators }

	assert.Nil(t, ind(13).RSI)
	assert.NotNil(t, ind(14).RSI)
	assert.Nil(t, ind(13).MFI)
	assert.NotNil(t, ind(14).MFI)
	assert.Nil(t, ind(18).VolumeMA20)
	assert.NotNil(t, ind(19).VolumeMA20)
	assert.Nil(t, ind(18).Bollinger)
	assert.NotNil(t, ind(19).Bollinger)
	assert.Nil(t, ind(6).SuperTrend)
	assert.NotNil(t, ind(7).SuperTrend)
	assert.Nil(t, ind(26).ADX)
	assert.NotNil(t, ind(27).ADX)
	assert.Nil(t, ind(32).MACD)
	assert.NotNil(t, ind(33).MACD)
}

func TestEnrich_DropsMissingClose(t *testing.T) {
	raw := waveBars(32)
	raw[4].Close = 0
	raw[9].Close = math.NaN()
	bars := Enrich(&model.Series{Symbol: "TEST", Bars: raw})
	assert.Len(t, bars, 30)
}

func TestEnrich_ShortSeriesHasNoMACD(t *testing.T) {
	bars := Enrich(&model.Series{Symbol: "TEST", Bars: waveBars(25)})
	for _, b := range bars {
		assert.Nil(t, b.Indicators.MACD)
		assert.Nil(t, b.Indicators.ADX)
	}
}

func TestEnrich_FlatSeriesIsDegenerateButSafe(t *testing.T) {
	bars := Enrich(&model.Series{Symbol: "FLAT", Bars: flatBars(40)})
	last := bars[len(bars)-1].Indicators
	assert.Nil(t, last.RSI)
	assert.Nil(t, last.MFI)
	assert.Nil(t, last.ADX)
	assert.Nil(t, last.Bollinger)
	require.NotNil(t, last.VolumeMA20)
	assert.Equal(t, 500.0, *last.VolumeMA20)
	assert.Equal(t, 0, strategy.Score(bars))
}

func TestEnrich_EmptySeries(t *testing.T) {
	assert.Empty(t, Enrich(&model.Series{Symbol: "NONE"}))
}

func TestScoreOfEnrich_PureAndBounded(t *testing.T) {
	series := &model.Series{Symbol: "WAVE", Bars: waveBars(45)}
	first := strategy.Score(Enrich(series))
	second := strategy.Score(Enrich(series))
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0)
	assert.LessOrEqual(t, first, 100)
}
