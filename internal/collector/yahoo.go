package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"SwingScanner/internal/model"
)

// DefaultYahooBaseURL is the Yahoo Finance chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	Suffix    string            // exchange suffix appended to bare symbols, e.g. ".IS"
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
	limiter   *rate.Limiter
	now       func() time.Time
}

// NewYahooFetcher creates a Yahoo fetcher with optional proxy and client-side rate limit.
func NewYahooFetcher(proxyURL, suffix string, requestsPerSecond int) *YahooFetcher {
	return &YahooFetcher{
		Client:  newHTTPClient(proxyURL),
		BaseURL: DefaultYahooBaseURL,
		Suffix:  suffix,
		SymbolMap: map[string]string{
			"XU100": "XU100.IS",
			"BIST":  "XU100.IS",
		},
		limiter: newLimiter(requestsPerSecond),
		now:     time.Now,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	if f.Suffix != "" && !strings.Contains(symbol, ".") {
		return symbol + f.Suffix
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Quote arrays hold nulls for bars the exchange did not trade.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchSeries downloads daily bars covering the last windowDays calendar days.
func (f *YahooFetcher) FetchSeries(ctx context.Context, symbol string, windowDays int) (*model.Series, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, classify(symbol, err)
	}

	from, to := window(f.now(), windowDays)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Kind: KindNetwork, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, classify(symbol, fmt.Errorf("yahoo fetch: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(symbol, fmt.Errorf("yahoo read body: %w", err))
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{Symbol: symbol, Kind: KindEmptyPayload, Err: fmt.Errorf("yahoo: status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, &FetchError{Symbol: symbol, Kind: KindNetwork, Err: fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, truncate(body, 200))}
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, &FetchError{Symbol: symbol, Kind: KindEmptyPayload, Err: fmt.Errorf("yahoo decode: %w", err)}
	}
	if chart.Chart.Error != nil {
		return nil, &FetchError{Symbol: symbol, Kind: KindEmptyPayload, Err: fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, &FetchError{Symbol: symbol, Kind: KindEmptyPayload, Err: fmt.Errorf("yahoo: no data returned")}
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	rows := rowsFromArrays(result.Timestamp, quote.Open, quote.High, quote.Low, quote.Close, quote.Volume)
	return newSeries(symbol, rows, f.now())
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
