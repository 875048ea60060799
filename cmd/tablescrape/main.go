package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tablescrape/tablescrape/config"
	"github.com/tablescrape/tablescrape/crawler"
	"github.com/tablescrape/tablescrape/fetch"
	"github.com/tablescrape/tablescrape/store"
	"github.com/tablescrape/tablescrape/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("tablescrape starting",
		"seeds", len(cfg.Crawl.Seeds),
		"maxDepth", cfg.Crawl.MaxDepth,
		"workers", cfg.Crawl.Workers,
		"timeout", cfg.Crawl.Timeout,
		"outputDir", cfg.Crawl.OutputDir,
	)

	if len(cfg.Crawl.Seeds) == 0 {
		slog.Error("no seed URLs configured")
		os.Exit(1)
	}

	// ── 3. Wire the crawl engine ────────────────────────────────────
	client := fetch.NewClient(cfg.Crawl.Timeout)
	st := store.New(cfg.Crawl.OutputDir)
	ledger := crawler.NewLedger()
	processor := crawler.NewProcessor(client, st, ledger)
	scheduler := crawler.NewScheduler(cfg.Crawl, processor, ledger)

	// ── 4. Run one crawl to completion ──────────────────────────────
	// Ctrl-C stops admitting new wavefronts; in-flight fetches finish
	// under their own per-request timeout.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := scheduler.Run(ctx)

	slog.Info("crawl finished",
		"artifacts", result.Artifacts,
		"pages", result.Pages,
		"duration", result.Duration.Round(time.Millisecond),
		"fetchFailures", result.FetchFailures,
		"parseFailures", result.ParseFailures,
		"persistFailures", result.PersistFailures,
	)

	// ── 5. Optional completion webhook ──────────────────────────────
	if cfg.Webhook.URL != "" {
		event := &webhook.Event{
			Type:      "crawl.completed",
			Timestamp: time.Now().Unix(),
			Data:      result,
		}
		wctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := webhook.Deliver(wctx, cfg.Webhook.URL, cfg.Webhook.Secret, event); err != nil {
			slog.Warn("webhook delivery failed", "url", cfg.Webhook.URL, "error", err)
		} else {
			slog.Info("webhook delivered", "url", cfg.Webhook.URL)
		}
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
