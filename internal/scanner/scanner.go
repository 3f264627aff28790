package scanner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"SwingScanner/internal/calculator"
	"SwingScanner/internal/collector"
	"SwingScanner/internal/metrics"
	"SwingScanner/internal/model"
	"SwingScanner/internal/strategy"
)

// ErrBatchEmpty is returned when no symbol of a scan reached scoring.
// The report is still returned so callers can inspect the failure counts.
var ErrBatchEmpty = errors.New("scan produced no usable series")

const (
	DefaultPoolSize    = 10
	DefaultTaskTimeout = 12 * time.Second
	DefaultWindowDays  = 45
)

// Options tunes a Scanner. Zero values fall back to the defaults above.
type Options struct {
	PoolSize    int
	ModePools   map[string]int // per-mode override of PoolSize
	TaskTimeout time.Duration
	WindowDays  int
	ScanTimeout time.Duration // overall deadline, 0 disables it
}

func (o Options) poolSize(mode string) int {
	if n := o.ModePools[mode]; n > 0 {
		return n
	}
	if o.PoolSize > 0 {
		return o.PoolSize
	}
	return DefaultPoolSize
}

func (o Options) taskTimeout() time.Duration {
	if o.TaskTimeout > 0 {
		return o.TaskTimeout
	}
	return DefaultTaskTimeout
}

func (o Options) windowDays() int {
	if o.WindowDays > 0 {
		return o.WindowDays
	}
	return DefaultWindowDays
}

// ProgressFunc receives one update per finished symbol, always from the
// goroutine that called Run.
type ProgressFunc func(model.Progress)

// Scanner runs fetch, enrich and score for a batch of symbols on a bounded pool.
type Scanner struct {
	fetcher  collector.Fetcher
	opts     Options
	enrich   func(*model.Series) []model.EnrichedBar
	evaluate func([]model.EnrichedBar) model.Breakdown
	now      func() time.Time
}

// New creates a Scanner that fetches through f.
func New(f collector.Fetcher, opts Options) *Scanner {
	return &Scanner{
		fetcher:  f,
		opts:     opts,
		enrich:   calculator.Enrich,
		evaluate: strategy.Evaluate,
		now:      time.Now,
	}
}

// Options returns the scanner's configuration.
func (s *Scanner) Options() Options { return s.opts }

// outcome is what a worker hands back for one symbol.
type outcome struct {
	symbol string
	state  model.TaskState
	result *model.ScoredResult
	err    error
}

// Run scans symbols and returns a ranked report. Per-symbol failures never
// abort the run. Duplicated symbols are scanned once.
func (s *Scanner) Run(ctx context.Context, mode string, symbols []string, onProgress ProgressFunc) (*model.ScanReport, error) {
	if s.opts.ScanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ScanTimeout)
		defer cancel()
	}

	symbols = dedupe(symbols)
	report := &model.ScanReport{
		RunID:          uuid.NewString(),
		Mode:           mode,
		Results:        []model.ScoredResult{},
		TotalAttempted: len(symbols),
		StartedAt:      s.now(),
	}

	workers := s.opts.poolSize(mode)
	if workers > len(symbols) {
		workers = len(symbols)
	}
	log.Info().
		Str("run_id", report.RunID).
		Str("mode", mode).
		Int("symbols", len(symbols)).
		Int("workers", workers).
		Msg("scan started")

	jobs := make(chan string, len(symbols))
	for _, sym := range symbols {
		jobs <- sym
	}
	close(jobs)

	outcomes := make(chan outcome, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				metrics.WorkersBusy.Inc()
				o := s.process(ctx, sym)
				metrics.WorkersBusy.Dec()
				outcomes <- o
			}
		}()
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	completed := 0
	for o := range outcomes {
		completed++
		switch o.state {
		case model.StateIncluded:
			report.TotalSucceeded++
			report.Results = append(report.Results, *o.result)
		case model.StateExcluded:
			report.TotalSucceeded++
		default:
			report.TotalFailed++
			metrics.FetchFailures.WithLabelValues(collector.KindOf(o.err).String()).Inc()
			log.Warn().Err(o.err).Str("run_id", report.RunID).Str("symbol", o.symbol).Msg("symbol skipped")
		}
		metrics.SymbolOutcomes.WithLabelValues(string(o.state)).Inc()

		if onProgress != nil {
			onProgress(model.Progress{
				RunID:     report.RunID,
				Completed: completed,
				Total:     len(symbols),
				Succeeded: report.TotalSucceeded,
				Symbol:    o.symbol,
				State:     o.state,
			})
		}
	}

	rank(report.Results)
	report.FinishedAt = s.now()
	metrics.ScanDuration.WithLabelValues(mode).Observe(report.Duration().Seconds())

	log.Info().
		Str("run_id", report.RunID).
		Int("attempted", report.TotalAttempted).
		Int("succeeded", report.TotalSucceeded).
		Int("failed", report.TotalFailed).
		Int("included", len(report.Results)).
		Dur("took", report.Duration()).
		Msg("scan finished")

	if report.TotalSucceeded == 0 {
		metrics.ScansTotal.WithLabelValues(mode, "empty").Inc()
		return report, ErrBatchEmpty
	}
	metrics.ScansTotal.WithLabelValues(mode, "ok").Inc()
	return report, nil
}

// process runs one symbol through the pipeline. Only the fetch is bounded by
// the task timeout; enrichment and scoring are pure CPU work.
func (s *Scanner) process(ctx context.Context, symbol string) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{symbol: symbol, state: model.StateFetchFailed,
			err: &collector.FetchError{Symbol: symbol, Kind: collector.KindTimeout, Err: err}}
	}

	log.Debug().Str("symbol", symbol).Str("state", string(model.StateFetching)).Msg("task")
	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.taskTimeout())
	started := time.Now()
	series, err := s.fetcher.FetchSeries(fetchCtx, symbol, s.opts.windowDays())
	cancel()
	metrics.FetchDuration.WithLabelValues(s.fetcher.Name()).Observe(time.Since(started).Seconds())
	if err != nil {
		return outcome{symbol: symbol, state: model.StateFetchFailed, err: err}
	}

	log.Debug().Str("symbol", symbol).Str("state", string(model.StateEnriching)).Int("bars", len(series.Bars)).Msg("task")
	bars := s.enrich(series)
	if len(bars) < model.MinBars {
		return outcome{symbol: symbol, state: model.StateFetchFailed,
			err: &collector.FetchError{Symbol: symbol, Kind: collector.KindInsufficientHistory,
				Err: fmt.Errorf("%d usable bars, need %d", len(bars), model.MinBars)}}
	}

	log.Debug().Str("symbol", symbol).Str("state", string(model.StateScoring)).Msg("task")
	breakdown := s.evaluate(bars)
	score := strategy.ScoreOf(breakdown)
	if score == 0 {
		return outcome{symbol: symbol, state: model.StateExcluded}
	}

	last, prev := bars[len(bars)-1], bars[len(bars)-2]
	return outcome{
		symbol: symbol,
		state:  model.StateIncluded,
		result: &model.ScoredResult{
			Symbol:        symbol,
			LastPrice:     last.Close,
			ChangePercent: changePercent(last.Close, prev.Close),
			Score:         score,
			Breakdown:     breakdown,
			Plan:          strategy.Plan(last.Close),
			Trailing:      trailing(bars),
		},
	}
}

// trailing copies the last TrailingBars bars so the full series can be released.
func trailing(bars []model.EnrichedBar) []model.EnrichedBar {
	start := len(bars) - model.TrailingBars
	if start < 0 {
		start = 0
	}
	out := make([]model.EnrichedBar, len(bars)-start)
	copy(out, bars[start:])
	return out
}

func changePercent(last, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (last - prev) / prev * 100
}

// rank orders results by score descending, then symbol ascending.
func rank(results []model.ScoredResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Symbol < results[j].Symbol
	})
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}
