package model

// MACD holds the MACD line, its signal line and the histogram for one bar.
type MACD struct {
	MACD   float64 `json:"macd"`
	Signal float64 `json:"signal"`
	Hist   float64 `json:"hist"`
}

// ADX holds the average directional index with its +DI / -DI components.
type ADX struct {
	ADX float64 `json:"adx"`
	DMP float64 `json:"dmp"`
	DMN float64 `json:"dmn"`
}

// Bollinger holds the Bollinger bands and the close's position inside them.
type Bollinger struct {
	Upper   float64 `json:"upper"`
	Lower   float64 `json:"lower"`
	Middle  float64 `json:"middle"`
	Percent float64 `json:"percent"`
}

// IndicatorSet holds the indicators computed for one bar.
// A nil field means the indicator's warm-up window was not full yet,
// or its math was degenerate for that bar.
type IndicatorSet struct {
	RSI        *float64   `json:"rsi,omitempty"`
	MACD       *MACD      `json:"macd,omitempty"`
	VolumeMA20 *float64   `json:"volume_ma20,omitempty"`
	MFI        *float64   `json:"mfi,omitempty"`
	ADX        *ADX       `json:"adx,omitempty"`
	SuperTrend *float64   `json:"supertrend,omitempty"`
	Bollinger  *Bollinger `json:"bollinger,omitempty"`
}

// EnrichedBar is a bar together with its indicators.
type EnrichedBar struct {
	OHLCV
	Indicators IndicatorSet `json:"indicators"`
}
