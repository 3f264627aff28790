package model

// Breakdown records the points awarded by each scoring bucket.
type Breakdown struct {
	RSI        int `json:"rsi"`
	MACD       int `json:"macd"`
	Volume     int `json:"volume"`
	ADX        int `json:"adx"`
	SuperTrend int `json:"supertrend"`
	Bollinger  int `json:"bollinger"`
}

// Total returns the unclamped sum of all buckets.
func (b Breakdown) Total() int {
	return b.RSI + b.MACD + b.Volume + b.ADX + b.SuperTrend + b.Bollinger
}

// TradePlan holds suggested price levels for a swing entry.
type TradePlan struct {
	Entry      float64 `json:"entry"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
}

// ScoredResult is the outcome for one symbol that scored above zero.
type ScoredResult struct {
	Symbol        string        `json:"symbol"`
	LastPrice     float64       `json:"last_price"`
	ChangePercent float64       `json:"change_percent"`
	Score         int           `json:"score"`
	Breakdown     Breakdown     `json:"breakdown"`
	Plan          TradePlan     `json:"plan"`
	Trailing      []EnrichedBar `json:"trailing"`
}

// Latest returns the most recent enriched bar, or false if none is kept.
func (r *ScoredResult) Latest() (EnrichedBar, bool) {
	if len(r.Trailing) == 0 {
		return EnrichedBar{}, false
	}
	return r.Trailing[len(r.Trailing)-1], true
}
