package collector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"SwingScanner/internal/model"
)

// Fetcher retrieves a bounded daily history for one symbol.
// Implementations make exactly one network call per FetchSeries and never retry.
// On success the returned series holds at least model.MinBars cleaned bars.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol string, windowDays int) (*model.Series, error)
	Name() string
}

// Kind classifies why a fetch failed.
type Kind int

const (
	KindTimeout Kind = iota + 1
	KindNetwork
	KindEmptyPayload
	KindInsufficientHistory
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindEmptyPayload:
		return "empty payload"
	case KindInsufficientHistory:
		return "insufficient history"
	default:
		return "unknown"
	}
}

// FetchError is returned by every Fetcher on failure.
type FetchError struct {
	Symbol string
	Kind   Kind
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Symbol, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err carries a FetchError of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

// KindOf returns the kind of a FetchError in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// classify wraps a transport-level error, separating timeouts from other failures.
// A cancelled context counts as a timeout: the task's time budget is gone either way.
func classify(symbol string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &FetchError{Symbol: symbol, Kind: KindTimeout, Err: err}
	case errors.As(err, &ne) && ne.Timeout():
		return &FetchError{Symbol: symbol, Kind: KindTimeout, Err: err}
	default:
		return &FetchError{Symbol: symbol, Kind: KindNetwork, Err: err}
	}
}

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// newLimiter returns a limiter allowing requestsPerSecond calls with an equal burst.
// A non-positive rate disables limiting.
func newLimiter(requestsPerSecond int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
}

// window returns the unix bounds of a lookback of windowDays ending at now.
func window(now time.Time, windowDays int) (from, to int64) {
	return now.AddDate(0, 0, -windowDays).Unix(), now.Unix()
}
