package calculator

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"SwingScanner/internal/model"
)

// Indicator parameters.
const (
	RSIPeriod            = 14
	MACDFast             = 12
	MACDSlow             = 26
	MACDSignal           = 9
	VolumeMAPeriod       = 20
	MFIPeriod            = 14
	ADXPeriod            = 14
	SuperTrendPeriod     = 7
	SuperTrendMultiplier = 3.0
	BollingerPeriod      = 20
	BollingerStdDev      = 2.0
)

// Enrich computes the full indicator set for every bar of the series.
// Bars without a usable close are dropped first. Indicators whose window is not
// yet full, or whose math is degenerate, are left nil. A panic inside any
// indicator is recovered here and yields bars without indicators.
func Enrich(series *model.Series) (out []model.EnrichedBar) {
	bars := usableBars(series.Bars)
	out = make([]model.EnrichedBar, len(bars))
	for i, b := range bars {
		out[i].OHLCV = b
	}

	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Str("symbol", series.Symbol).
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("indicator computation degenerate, dropping indicators")
			for i := range out {
				out[i].Indicators = model.IndicatorSet{}
			}
		}
	}()

	closes := extractCloses(bars)

	rsi := RSI(closes, RSIPeriod)
	macd, signal, hist := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	volMA := SMA(extractVolumes(bars), VolumeMAPeriod)
	mfi := MFI(bars, MFIPeriod)
	adx, dmp, dmn := ADX(bars, ADXPeriod)
	st := SuperTrend(bars, SuperTrendPeriod, SuperTrendMultiplier)
	bb := Bollinger(closes, BollingerPeriod, BollingerStdDev)

	for i := range out {
		ind := &out[i].Indicators
		ind.RSI = ptr(rsi[i])
		ind.VolumeMA20 = ptr(volMA[i])
		ind.MFI = ptr(mfi[i])
		ind.SuperTrend = ptr(st[i])
		if valid(macd[i]) && valid(signal[i]) && valid(hist[i]) {
			ind.MACD = &model.MACD{MACD: macd[i], Signal: signal[i], Hist: hist[i]}
		}
		if valid(adx[i]) && valid(dmp[i]) && valid(dmn[i]) {
			ind.ADX = &model.ADX{ADX: adx[i], DMP: dmp[i], DMN: dmn[i]}
		}
		if valid(bb.Upper[i]) && valid(bb.Lower[i]) && valid(bb.Middle[i]) && valid(bb.Percent[i]) {
			ind.Bollinger = &model.Bollinger{
				Upper:   bb.Upper[i],
				Lower:   bb.Lower[i],
				Middle:  bb.Middle[i],
				Percent: bb.Percent[i],
			}
		}
	}
	return out
}

func usableBars(bars []model.OHLCV) []model.OHLCV {
	kept := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if b.Close > 0 {
			kept = append(kept, b)
		}
	}
	return kept
}

func ptr(v float64) *float64 {
	if !valid(v) {
		return nil
	}
	return &v
}
