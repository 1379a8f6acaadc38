package crawl

import (
	"time"

	"github.com/jiwoolab/naver-top-news/internal/models"
)

// DefaultSource labels records whose publisher could not be determined
// on either the listing or the article page.
const DefaultSource = "unknown"

// assemble merges listing and enrichment fields into the final record.
// Not a symmetric merge: listing data is the base, enrichment fills
// and overrides per field. Date and CreatedAt share the same instant;
// the first groups, the second audits.
func assemble(cand models.NewsCandidate, enr models.Enrichment, category string, now time.Time) models.NewsRecord {
	summary := enr.Summary
	if summary == "" {
		summary = cand.Title + "..."
	}

	source := enr.Source
	if source == "" {
		source = cand.Source
	}
	if source == "" {
		source = DefaultSource
	}

	image := enr.ImageURL
	if image == "" {
		image = cand.ThumbnailURL
	}

	return models.NewsRecord{
		Category:  category,
		Title:     cand.Title,
		Link:      cand.Link,
		ImageURL:  image,
		Source:    source,
		Summary:   summary,
		Date:      now,
		CreatedAt: now,
	}
}
