package collector

import (
	"fmt"
	"sort"
	"time"

	"SwingScanner/internal/model"
)

// Row is one bar as received from a provider. Nil fields were null in the payload.
type Row struct {
	Timestamp int64
	Open      *float64
	High      *float64
	Low       *float64
	Close     *float64
	Volume    *float64
}

// CleanBars turns provider rows into a chronological series: rows without a
// positive close are dropped, rows sharing a timestamp keep the last occurrence,
// and missing open/high/low fall back to the close.
func CleanBars(rows []Row) []model.OHLCV {
	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Close == nil || !(*r.Close > 0) {
			continue
		}
		kept = append(kept, r)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Timestamp < kept[j].Timestamp })

	bars := make([]model.OHLCV, 0, len(kept))
	for i, r := range kept {
		c := *r.Close
		bar := model.OHLCV{
			Time:   time.Unix(r.Timestamp, 0).UTC(),
			Open:   orDefault(r.Open, c),
			High:   orDefault(r.High, c),
			Low:    orDefault(r.Low, c),
			Close:  c,
			Volume: orDefault(r.Volume, 0),
		}
		if i > 0 && kept[i-1].Timestamp == r.Timestamp {
			bars[len(bars)-1] = bar
			continue
		}
		bars = append(bars, bar)
	}
	return bars
}

// newSeries cleans rows and enforces the minimum history length.
func newSeries(symbol string, rows []Row, fetchedAt time.Time) (*model.Series, error) {
	if len(rows) == 0 {
		return nil, &FetchError{Symbol: symbol, Kind: KindEmptyPayload, Err: fmt.Errorf("no rows returned")}
	}
	bars := CleanBars(rows)
	if len(bars) < model.MinBars {
		return nil, &FetchError{
			Symbol: symbol,
			Kind:   KindInsufficientHistory,
			Err:    fmt.Errorf("%d bars after cleaning, need %d", len(bars), model.MinBars),
		}
	}
	return &model.Series{Symbol: symbol, Bars: bars, FetchedAt: fetchedAt}, nil
}

// rowsFromArrays zips parallel provider arrays into rows. Shorter value arrays
// leave the missing fields nil.
func rowsFromArrays(ts []int64, o, h, l, c, v []*float64) []Row {
	rows := make([]Row, len(ts))
	for i, t := range ts {
		rows[i] = Row{
			Timestamp: t,
			Open:      at(o, i),
			High:      at(h, i),
			Low:       at(l, i),
			Close:     at(c, i),
			Volume:    at(v, i),
		}
	}
	return rows
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
