package collector

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"SwingScanner/internal/model"
)

// MockFetcher returns controllable synthetic data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.OHLCV // returned as-is when set
	Err   error
	Delay time.Duration
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(ctx context.Context, symbol string, windowDays int) (*model.Series, error) {
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, classify(symbol, ctx.Err())
		case <-time.After(m.Delay):
		}
	}
	if m.Err != nil {
		return nil, &FetchError{Symbol: symbol, Kind: KindNetwork, Err: m.Err}
	}
	if m.Bars != nil {
		if len(m.Bars) < model.MinBars {
			return nil, &FetchError{Symbol: symbol, Kind: KindInsufficientHistory, Err: fmt.Errorf("%d bars, need %d", len(m.Bars), model.MinBars)}
		}
		return &model.Series{Symbol: symbol, Bars: m.Bars, FetchedAt: time.Now()}, nil
	}

	price := m.Price
	if price <= 0 {
		price = 50
	}
	return &model.Series{
		Symbol:    symbol,
		Bars:      generateMockBars(symbol, price, tradingDays(windowDays)),
		FetchedAt: time.Now(),
	}, nil
}

// tradingDays approximates the weekday count of a calendar window, never below MinBars.
func tradingDays(windowDays int) int {
	n := windowDays * 5 / 7
	if n < model.MinBars {
		n = model.MinBars
	}
	return n
}

// generateMockBars produces a random walk seeded by the symbol, so the same
// symbol always yields the same bars.
func generateMockBars(symbol string, basePrice float64, count int) []model.OHLCV {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	end := time.Now().UTC().Truncate(24 * time.Hour)
	drift := (rng.Float64() - 0.45) * 0.01
	bars := make([]model.OHLCV, count)
	p := basePrice
	for i := 0; i < count; i++ {
		open := p
		p = math.Max(0.01, p*(1+drift+rng.NormFloat64()*0.015))
		spread := p * (0.005 + rng.Float64()*0.01)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   open,
			High:   math.Max(open, p) + spread,
			Low:    math.Min(open, p) - spread,
			Close:  p,
			Volume: 1000000 * (0.5 + rng.Float64()),
		}
	}
	return bars
}
