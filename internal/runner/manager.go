package runner

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"SwingScanner/internal/model"
	"SwingScanner/internal/scanner"
)

// ErrScanRunning is returned when a scan is requested while another is in flight.
var ErrScanRunning = errors.New("a scan is already running")

const subscriberBuffer = 64

// Scanner is the part of scanner.Scanner the manager drives.
type Scanner interface {
	Run(ctx context.Context, mode string, symbols []string, onProgress scanner.ProgressFunc) (*model.ScanReport, error)
}

// SymbolSource resolves a scan mode to its symbols.
type SymbolSource interface {
	ListSymbols(mode string) ([]string, error)
}

// Status describes what the manager is doing right now.
type Status struct {
	Running  bool            `json:"running"`
	Mode     string          `json:"mode,omitempty"`
	Progress *model.Progress `json:"progress,omitempty"`
	LastRun  string          `json:"last_run_id,omitempty"`
}

// Manager serialises scans and keeps the latest report of each mode.
// Reports are never mutated after they are stored, so readers share them.
type Manager struct {
	scanner Scanner
	symbols SymbolSource

	mu       sync.Mutex
	running  string
	progress *model.Progress
	latest   map[string]*model.ScanReport
	last     *model.ScanReport
	subs     map[int]chan model.Progress
	nextSub  int
}

// NewManager creates a Manager.
func NewManager(sc Scanner, symbols SymbolSource) *Manager {
	return &Manager{
		scanner: sc,
		symbols: symbols,
		latest:  make(map[string]*model.ScanReport),
		subs:    make(map[int]chan model.Progress),
	}
}

// Run executes a scan of mode and blocks until it finishes.
func (m *Manager) Run(ctx context.Context, mode string) (*model.ScanReport, error) {
	symbols, err := m.acquire(mode)
	if err != nil {
		return nil, err
	}
	return m.run(ctx, mode, symbols)
}

// Start launches a scan of mode in the background and calls done with its
// outcome. Errors that prevent the scan from starting are returned directly.
func (m *Manager) Start(ctx context.Context, mode string, done func(*model.ScanReport, error)) error {
	symbols, err := m.acquire(mode)
	if err != nil {
		return err
	}
	go func() {
		report, err := m.run(ctx, mode, symbols)
		if done != nil {
			done(report, err)
		}
	}()
	return nil
}

func (m *Manager) acquire(mode string) ([]string, error) {
	symbols, err := m.symbols.ListSymbols(mode)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != "" {
		return nil, ErrScanRunning
	}
	m.running = mode
	m.progress = nil
	return symbols, nil
}

func (m *Manager) run(ctx context.Context, mode string, symbols []string) (*model.ScanReport, error) {
	report, err := m.scanner.Run(ctx, mode, symbols, m.publish)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = ""
	m.progress = nil
	if err != nil {
		if errors.Is(err, scanner.ErrBatchEmpty) {
			log.Warn().Str("mode", mode).Msg("scan finished without usable data, keeping previous report")
		}
		return report, err
	}
	m.latest[mode] = report
	m.last = report
	return report, nil
}

// publish records progress and fans it out without blocking the scan.
// Slow subscribers miss updates rather than stall the aggregator.
func (m *Manager) publish(p model.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = &p
	for _, ch := range m.subs {
		select {
		case ch <- p:
		default:
		}
	}
}

// Subscribe returns a channel of progress updates and a func to release it.
func (m *Manager) Subscribe() (<-chan model.Progress, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan model.Progress, subscriberBuffer)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

// Latest returns the newest successful report of mode, or of any mode when
// mode is empty.
func (m *Manager) Latest(mode string) (*model.ScanReport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mode == "" {
		return m.last, m.last != nil
	}
	r, ok := m.latest[mode]
	return r, ok
}

// Status returns a snapshot of the current state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{Running: m.running != "", Mode: m.running}
	if m.progress != nil {
		p := *m.progress
		st.Progress = &p
	}
	if m.last != nil {
		st.LastRun = m.last.RunID
	}
	return st
}
