package model

import "time"

const (
	// MinBars is the minimum number of cleaned daily bars a series needs to be scored.
	MinBars = 30
	// TrailingBars is how many enriched bars a ScoredResult keeps for charting.
	TrailingBars = 30
)

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series holds the cleaned price history of one symbol, oldest bar first.
type Series struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Last returns the most recent bar. The series must not be empty.
func (s *Series) Last() OHLCV {
	return s.Bars[len(s.Bars)-1]
}
