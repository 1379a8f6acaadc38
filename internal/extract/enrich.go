package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jiwoolab/naver-top-news/internal/dedupe"
	"github.com/jiwoolab/naver-top-news/internal/logger"
	"github.com/jiwoolab/naver-top-news/internal/models"
	"github.com/jiwoolab/naver-top-news/internal/processing"
)

// Fetcher retrieves a page and parses it. Implemented by fetch.Client;
// tests substitute stubs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

var (
	// Publisher-identification chain on article pages: masthead logo
	// alt/title first, byline link text last.
	articleSourceQueries = []attrQuery{
		{Selector: ".media_end_head_top_logo img", Attr: "alt"},
		{Selector: ".media_end_head_top_logo img", Attr: "title"},
		{Selector: ".press_logo img", Attr: "alt"},
		{Selector: ".media_end_head_journalist a", Attr: ""},
		{Selector: ".byline a", Attr: ""},
	}

	// Body-container chain, oldest layout last.
	articleBodyPatterns = []string{"#newsct_article", "#articeBody", ".newsct_article"}

	// Subtrees that would otherwise leak into the summary.
	noiseSelector = "script, style, .byline, .media_end_head_journalist, .reporter_area, .ad_wrap"

	ogImageSelector = `meta[property="og:image"]`
)

// Enricher visits an article page and derives the summary,
// representative image and publisher name for the final record.
type Enricher struct {
	fetcher Fetcher
	opts    processing.SummaryOptions
	cache   *dedupe.Cache
	log     *slog.Logger
}

// NewEnricher builds an enricher around a page fetcher. A nil cache
// disables reuse across passes.
func NewEnricher(fetcher Fetcher, opts processing.SummaryOptions, cache *dedupe.Cache, log *slog.Logger) *Enricher {
	if log == nil {
		log = logger.Discard()
	}
	return &Enricher{fetcher: fetcher, opts: opts, cache: cache, log: log}
}

// Enrich never fails the pipeline: fetch or parse trouble is logged
// and yields an all-empty result, and the record falls back to its
// listing-derived fields.
func (e *Enricher) Enrich(ctx context.Context, articleURL string) models.Enrichment {
	if e.cache != nil {
		if enr, ok := e.cache.Get(articleURL); ok {
			e.log.Debug("enrichment cache hit", slog.String("url", articleURL))
			return enr
		}
	}

	doc, err := e.fetcher.Fetch(ctx, articleURL)
	if err != nil {
		e.log.Warn("article fetch failed", slog.String("url", articleURL), slog.Any("err", err))
		return models.Enrichment{}
	}

	enr := EnrichDocument(doc, e.opts)
	// Empty results stay uncached so a transient bad page gets retried.
	if e.cache != nil && enr != (models.Enrichment{}) {
		e.cache.Put(articleURL, enr)
	}
	return enr
}

// EnrichDocument extracts enrichment fields from an already-parsed
// article page.
func EnrichDocument(doc *goquery.Document, opts processing.SummaryOptions) models.Enrichment {
	var result models.Enrichment

	result.Source = firstAttrOrText(doc.Selection, articleSourceQueries)

	body, bodyErr := Locate(doc, articleBodyPatterns)
	if bodyErr == nil {
		body.Find(noiseSelector).Remove()
		result.Summary = processing.Summarize(body.Text(), opts)
	}

	if content := strings.TrimSpace(doc.Find(ogImageSelector).AttrOr("content", "")); content != "" {
		result.ImageURL = content
	} else if bodyErr == nil {
		result.ImageURL = firstImageURL(body, []string{"img"})
	}

	return result
}

// firstAttrOrText evaluates the queries in order; the first non-empty
// attribute value or visible text wins.
func firstAttrOrText(root *goquery.Selection, queries []attrQuery) string {
	for _, q := range queries {
		sel := root.Find(q.Selector).First()
		if sel.Length() == 0 {
			continue
		}

		var value string
		if q.Attr == "" {
			value = sel.Text()
		} else {
			value = sel.AttrOr(q.Attr, "")
		}

		if value = processing.CollapseWhitespace(value); value != "" {
			return value
		}
	}
	return ""
}
