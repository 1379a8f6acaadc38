package extract_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/jiwoolab/naver-top-news/internal/dedupe"
	"github.com/jiwoolab/naver-top-news/internal/extract"
	"github.com/jiwoolab/naver-top-news/internal/logger"
	"github.com/jiwoolab/naver-top-news/internal/processing"
)

type stubFetcher struct {
	doc *goquery.Document
	err error
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (*goquery.Document, error) {
	return s.doc, s.err
}

type countingFetcher struct {
	doc   *goquery.Document
	calls int
}

func (c *countingFetcher) Fetch(_ context.Context, _ string) (*goquery.Document, error) {
	c.calls++
	return c.doc, nil
}

func TestEnrichDocumentFullArticle(t *testing.T) {
	doc := parseDoc(t, `
		<head><meta property="og:image" content="https://img.example.com/og.jpg"></head>
		<body>
			<div class="media_end_head_top_logo"><img alt="데일리경제" src="logo.png"></div>
			<div id="newsct_article">
				<script>var tracking = true;</script>
				The market rallied sharply on Tuesday. Analysts credited the central bank.
				Exporters also posted strong gains. A fourth sentence that must not appear.
				<div class="byline">reporter@example.com 기자의 다른 기사 보기</div>
			</div>
		</body>
	`)

	got := extract.EnrichDocument(doc, processing.SummaryOptions{MaxSentences: 3, MinRunes: 10})

	require.Equal(t, "데일리경제", got.Source)
	require.Equal(t, "https://img.example.com/og.jpg", got.ImageURL)
	require.Equal(t,
		"The market rallied sharply on Tuesday. Analysts credited the central bank. Exporters also posted strong gains.",
		got.Summary)
}

func TestEnrichDocumentStripsNoiseFromSummary(t *testing.T) {
	doc := parseDoc(t, `
		<div id="newsct_article">
			<script>window.dataLayer = window.dataLayer || [];</script>
			<style>.x { color: red; }</style>
			Only this narrative sentence should survive the stripping.
			<div class="reporter_area">홍길동 기자가 작성한 다른 기사를 확인하세요.</div>
		</div>
	`)

	got := extract.EnrichDocument(doc, processing.SummaryOptions{MaxSentences: 3, MinRunes: 10})
	require.Equal(t, "Only this narrative sentence should survive the stripping.", got.Summary)
}

func TestEnrichDocumentBodyFallbackChain(t *testing.T) {
	doc := parseDoc(t, `
		<div id="articeBody">Legacy layout body text with enough length to qualify.</div>
	`)

	got := extract.EnrichDocument(doc, processing.SummaryOptions{MaxSentences: 3, MinRunes: 10})
	require.Equal(t, "Legacy layout body text with enough length to qualify.", got.Summary)
}

func TestEnrichDocumentImageFallsBackToBody(t *testing.T) {
	doc := parseDoc(t, `
		<div id="newsct_article">
			A perfectly ordinary article sentence for the summary.
			<img src="spacer.gif" data-src="https://img.example.com/inline.jpg">
		</div>
	`)

	got := extract.EnrichDocument(doc, processing.SummaryOptions{MaxSentences: 3, MinRunes: 10})
	require.Equal(t, "https://img.example.com/inline.jpg", got.ImageURL)
}

func TestEnrichDocumentSourceFromByline(t *testing.T) {
	doc := parseDoc(t, `
		<div class="byline"><a href="/press/42">시사신문</a></div>
		<div id="newsct_article">Some body text long enough to qualify.</div>
	`)

	got := extract.EnrichDocument(doc, processing.SummaryOptions{MaxSentences: 3, MinRunes: 10})
	require.Equal(t, "시사신문", got.Source)
}

func TestEnrichDocumentNothingFound(t *testing.T) {
	doc := parseDoc(t, `<p>not an article page at all</p>`)

	got := extract.EnrichDocument(doc, processing.DefaultSummaryOptions())
	require.Empty(t, got.Summary)
	require.Empty(t, got.ImageURL)
	require.Empty(t, got.Source)
}

func TestEnrichFetchFailureIsNonFatal(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	enricher := extract.NewEnricher(fetcher, processing.DefaultSummaryOptions(), nil, logger.Discard())

	got := enricher.Enrich(context.Background(), "https://news.example.com/article/1")
	require.Empty(t, got.Summary)
	require.Empty(t, got.ImageURL)
	require.Empty(t, got.Source)
}

func TestEnrichReusesCachedResult(t *testing.T) {
	fetcher := &countingFetcher{doc: parseDoc(t, `
		<div id="newsct_article">A qualifying sentence for the cached summary.</div>
	`)}
	cache := dedupe.NewCache(8, time.Minute)
	enricher := extract.NewEnricher(fetcher, processing.DefaultSummaryOptions(), cache, logger.Discard())

	first := enricher.Enrich(context.Background(), "https://news.example.com/article/1")
	second := enricher.Enrich(context.Background(), "https://news.example.com/article/1")

	require.Equal(t, first, second)
	require.Equal(t, 1, fetcher.calls)
}

func TestEnrichDoesNotCacheEmptyResult(t *testing.T) {
	fetcher := &countingFetcher{doc: parseDoc(t, `<p>nothing useful</p>`)}
	cache := dedupe.NewCache(8, time.Minute)
	enricher := extract.NewEnricher(fetcher, processing.DefaultSummaryOptions(), cache, logger.Discard())

	enricher.Enrich(context.Background(), "https://news.example.com/article/1")
	enricher.Enrich(context.Background(), "https://news.example.com/article/1")

	require.Equal(t, 2, fetcher.calls)
}
