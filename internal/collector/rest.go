package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"SwingScanner/internal/model"
)

// RESTFetcher implements Fetcher against a generic bars endpoint returning
// parallel arrays of timestamps and OHLCV values.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, requestsPerSecond int) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
		limiter: newLimiter(requestsPerSecond),
		now:     time.Now,
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBars is the expected JSON shape from the bars endpoint.
type restBars struct {
	T []int64    `json:"t"`
	O []*float64 `json:"o"`
	H []*float64 `json:"h"`
	L []*float64 `json:"l"`
	C []*float64 `json:"c"`
	V []*float64 `json:"v"`
}

func (f *RESTFetcher) FetchSeries(ctx context.Context, symbol string, windowDays int) (*model.Series, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, classify(symbol, err)
	}

	from, to := window(f.now(), windowDays)
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&from=%d&to=%d",
		f.BaseURL, url.QueryEscape(symbol), from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Kind: KindNetwork, Err: err}
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, classify(symbol, fmt.Errorf("fetch bars: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &FetchError{Symbol: symbol, Kind: KindNetwork, Err: fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, truncate(body, 200))}
	}

	var payload restBars
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if ctx.Err() != nil {
			return nil, classify(symbol, ctx.Err())
		}
		return nil, &FetchError{Symbol: symbol, Kind: KindEmptyPayload, Err: fmt.Errorf("decode bars: %w", err)}
	}
	rows := rowsFromArrays(payload.T, payload.O, payload.H, payload.L, payload.C, payload.V)
	return newSeries(symbol, rows, f.now())
}
