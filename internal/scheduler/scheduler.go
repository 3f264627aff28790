package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"SwingScanner/internal/model"
	"SwingScanner/internal/notifier"
	"SwingScanner/internal/runner"
	"SwingScanner/internal/universe"
)

// Sender delivers formatted reports.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs scans on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *runner.Manager
	Notifier Sender // nil disables notifications
	Mode     string
	TopN     int
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, rm *runner.Manager, n Sender, mode string, topN int) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   rm,
		Notifier: n,
		Mode:     mode,
		TopN:     topN,
		Ctx:      ctx,
	}
}

// Register adds the periodic scan.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Str("mode", s.Mode).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the scheduled scan immediately.
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Info().Str("mode", s.Mode).Msg("running scheduled scan")
	report, err := s.Runner.Run(s.Ctx, s.Mode)
	if errors.Is(err, runner.ErrScanRunning) {
		log.Warn().Str("mode", s.Mode).Msg("scheduled scan skipped, another scan is running")
		return
	}
	s.report(s.Mode, report, err)
}

func (s *Scheduler) report(mode string, report *model.ScanReport, err error) {
	if err != nil {
		log.Error().Err(err).Str("mode", mode).Msg("scan failed")
		s.trySend(notifier.FormatScanFailed(mode, report, err))
		return
	}
	s.trySend(notifier.FormatScanReport(report, s.TopN))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Commands may arrive as /scan@BotName in group chats.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/scan":
		mode := s.Mode
		if len(args) > 0 {
			mode = strings.ToLower(args[0])
		}
		err := s.Runner.Start(s.Ctx, mode, func(report *model.ScanReport, err error) {
			s.report(mode, report, err)
		})
		switch {
		case errors.Is(err, runner.ErrScanRunning):
			return "⏳ A scan is already running, try again when it finishes."
		case errors.Is(err, universe.ErrUnknownMode):
			return fmt.Sprintf("Unknown mode %q. Use /scan quick or /scan full.", mode)
		case err != nil:
			return "❌ " + err.Error()
		}
		return fmt.Sprintf("🚀 %s scan started.", strings.ToUpper(mode))
	case "/top":
		report, ok := s.Runner.Latest("")
		if !ok {
			return "No scan has completed yet. Start one with /scan."
		}
		if len(args) == 0 {
			return notifier.FormatScanReport(report, s.TopN)
		}
		symbol := strings.ToUpper(args[0])
		for i := range report.Results {
			if report.Results[i].Symbol == symbol {
				return notifier.FormatResult(&report.Results[i])
			}
		}
		return fmt.Sprintf("%s is not among the results of the last scan.", symbol)
	case "/status":
		st := s.Runner.Status()
		if !st.Running {
			return "💤 Idle."
		}
		if st.Progress == nil {
			return fmt.Sprintf("🔄 %s scan starting.", strings.ToUpper(st.Mode))
		}
		return fmt.Sprintf("🔄 %s scan %d/%d (%d%%), %d scored.",
			strings.ToUpper(st.Mode), st.Progress.Completed, st.Progress.Total, st.Progress.Percent(), st.Progress.Succeeded)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Debug().Msg("notifications disabled, report not sent")
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
