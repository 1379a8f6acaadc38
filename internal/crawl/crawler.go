package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jiwoolab/naver-top-news/internal/config"
	"github.com/jiwoolab/naver-top-news/internal/dedupe"
	"github.com/jiwoolab/naver-top-news/internal/extract"
	"github.com/jiwoolab/naver-top-news/internal/logger"
	"github.com/jiwoolab/naver-top-news/internal/models"
	"github.com/jiwoolab/naver-top-news/internal/processing"
	"github.com/jiwoolab/naver-top-news/internal/store"
)

// Crawler runs one pass: the top story of every configured category,
// then a single batch write.
type Crawler struct {
	fetcher  extract.Fetcher
	enricher *extract.Enricher
	store    store.Store
	log      *slog.Logger

	categories  []models.CategorySpec
	origin      string
	concurrency int
	now         func() time.Time
}

// New wires a crawler from its collaborators and configuration.
func New(fetcher extract.Fetcher, st store.Store, cfg *config.Crawler, categories []models.CategorySpec, log *slog.Logger) *Crawler {
	if log == nil {
		log = logger.Discard()
	}

	opts := processing.SummaryOptions{
		MaxSentences: cfg.SummaryMaxSentences,
		MinRunes:     cfg.SummaryMinRunes,
	}

	// Only interval mode revisits articles, so a single pass runs
	// without the cache.
	var cache *dedupe.Cache
	if cfg.Interval > 0 && cfg.EnrichCacheSize > 0 {
		cache = dedupe.NewCache(cfg.EnrichCacheSize, cfg.EnrichCacheTTL)
	}

	return &Crawler{
		fetcher:     fetcher,
		enricher:    extract.NewEnricher(fetcher, opts, cache, log),
		store:       st,
		log:         log,
		categories:  categories,
		origin:      cfg.Origin,
		concurrency: cfg.Concurrency,
		now:         time.Now,
	}
}

// Run crawls every category and commits the surviving records in one
// batch. Per-category failures only skip that category; the run itself
// fails only when the final commit does. A pass that finds nothing
// performs no write at all.
func (c *Crawler) Run(ctx context.Context) error {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		records []models.NewsRecord
	)

	// Categories are independent, so bounded parallelism is safe; with
	// concurrency 1 this degenerates to the sequential baseline.
	sem := make(chan struct{}, c.concurrency)

	for _, cat := range c.categories {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(cat models.CategorySpec) {
			defer wg.Done()
			defer func() { <-sem }()

			rec, err := c.crawlCategory(ctx, cat)
			if err != nil {
				c.log.Warn("category skipped", slog.String("category", cat.Key), slog.Any("err", err))
				return
			}

			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
		}(cat)
	}

	wg.Wait()

	if len(records) == 0 {
		c.log.Info("nothing to persist")
		return nil
	}

	if err := c.store.SaveDaily(ctx, records); err != nil {
		return fmt.Errorf("persist batch: %w", err)
	}

	return nil
}

// crawlCategory locates the top item on the category's listing page,
// extracts its fields and enriches them from the article page.
func (c *Crawler) crawlCategory(ctx context.Context, cat models.CategorySpec) (models.NewsRecord, error) {
	c.log.Info("crawling category", slog.String("category", cat.Key), slog.String("name", cat.Name))

	doc, err := c.fetcher.Fetch(ctx, cat.ListingURL)
	if err != nil {
		return models.NewsRecord{}, fmt.Errorf("listing page: %w", err)
	}

	item, err := extract.Locate(doc, extract.ItemPatterns(cat.Style))
	if err != nil {
		return models.NewsRecord{}, fmt.Errorf("listing %s: %w", cat.ListingURL, err)
	}

	cand, err := extract.Fields(item, cat.Style, c.origin)
	if err != nil {
		return models.NewsRecord{}, err
	}

	enrichment := c.enricher.Enrich(ctx, cand.Link)

	rec := assemble(cand, enrichment, cat.Key, c.now())
	c.log.Info("category crawled", slog.String("category", cat.Key), slog.String("title", rec.Title))
	return rec, nil
}
