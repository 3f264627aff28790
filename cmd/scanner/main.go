package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"SwingScanner/internal/collector"
	"SwingScanner/internal/config"
	"SwingScanner/internal/logger"
	"SwingScanner/internal/notifier"
	"SwingScanner/internal/runner"
	"SwingScanner/internal/scanner"
	"SwingScanner/internal/scheduler"
	"SwingScanner/internal/server"
	"SwingScanner/internal/universe"
)

func main() {
	once := flag.Bool("once", false, "run a single scan, print the report and exit")
	mode := flag.String("mode", "", "scan mode for -once (defaults to schedule.scan_mode)")
	flag.Parse()

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init("swingscanner", cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	fetcher := newFetcher(cfg)
	log.Info().Str("provider", fetcher.Name()).Msg("data source ready")

	sc := scanner.New(fetcher, scanner.Options{
		ModePools:   map[string]int{universe.ModeQuick: cfg.Scan.PoolQuick, universe.ModeFull: cfg.Scan.PoolFull},
		PoolSize:    cfg.Scan.PoolFull,
		TaskTimeout: cfg.Scan.TaskTimeout,
		WindowDays:  cfg.Scan.WindowDays,
		ScanTimeout: cfg.Scan.ScanTimeout,
	})
	up := universe.New(cfg.Universe)
	rm := runner.NewManager(sc, up)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		m := *mode
		if m == "" {
			m = cfg.Schedule.ScanMode
		}
		code := runOnce(ctx, rm, m, cfg.Schedule.TopN)
		stop()
		os.Exit(code)
	}

	// Telegram is optional; without it scans are only served over HTTP.
	var sender scheduler.Sender
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	}

	sched := scheduler.NewScheduler(ctx, rm, sender, cfg.Schedule.ScanMode, cfg.Schedule.TopN)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing scheduled scan now")
		go sched.RunScanNow()
	}

	srv := server.New(ctx, rm, up, cfg.Server.Listen)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	log.Info().Msg("SwingScanner is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	log.Info().Msg("shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("SwingScanner stopped")
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	ds := cfg.DataSource
	switch ds.Provider {
	case "rest":
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy, ds.RateLimit)
	case "mock":
		return &collector.MockFetcher{}
	default:
		return collector.NewYahooFetcher(cfg.Proxy, ds.SymbolSuffix, ds.RateLimit)
	}
}

// runOnce scans mode, prints the report and returns the process exit code.
func runOnce(ctx context.Context, rm *runner.Manager, mode string, topN int) int {
	report, err := rm.Run(ctx, mode)
	if err != nil {
		if errors.Is(err, scanner.ErrBatchEmpty) && report != nil {
			fmt.Println(notifier.FormatScanFailed(mode, report, err))
		}
		log.Error().Err(err).Str("mode", mode).Msg("scan failed")
		return 1
	}
	fmt.Println(notifier.FormatScanReport(report, topN))
	return 0
}
