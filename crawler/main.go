package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/jiwoolab/naver-top-news/internal/config"
	"github.com/jiwoolab/naver-top-news/internal/crawl"
	"github.com/jiwoolab/naver-top-news/internal/fetch"
	"github.com/jiwoolab/naver-top-news/internal/logger"
	"github.com/jiwoolab/naver-top-news/internal/store"
)

func main() {
	// Local development convenience; in deployment the scheduler
	// injects the environment directly.
	_ = godotenv.Load()

	log := logger.New("crawler")

	cfg, err := config.LoadCrawler()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	categories, err := config.LoadCategories(cfg.CategoriesFile)
	if err != nil {
		log.Error("load categories", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Authentication failure aborts before any page is fetched.
	st, err := store.NewFirestore(ctx, cfg.Firestore, log)
	if err != nil {
		log.Error("init firestore", slog.Any("err", err))
		os.Exit(1)
	}
	defer st.Close()

	crawler := crawl.New(fetch.New(cfg.FetchTimeout), st, cfg, categories, log)

	log.Info("crawler starting", slog.Int("categories", len(categories)))

	if cfg.Interval <= 0 {
		if runOnce(ctx, log, crawler) != nil {
			os.Exit(1)
		}
		return
	}

	log.Info("crawler running on interval", slog.Duration("interval", cfg.Interval))
	runOnce(ctx, log, crawler)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case <-ticker.C:
			runOnce(ctx, log, crawler)
		}
	}
}

// runOnce executes a single crawl pass. In interval mode failures are
// only logged; the next tick retries.
func runOnce(ctx context.Context, log *slog.Logger, crawler *crawl.Crawler) error {
	runLog := log.With(slog.String("run_id", uuid.NewString()))
	start := time.Now()

	if err := crawler.Run(ctx); err != nil {
		runLog.Error("crawl pass failed", slog.Any("err", err))
		return err
	}

	runLog.Info("crawl pass completed", slog.Duration("took", time.Since(start)))
	return nil
}
