package processing

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	// A sentence boundary is whitespace that immediately follows
	// terminal punctuation. The marker byte survives the earlier
	// whitespace collapse because it never appears in page text.
	sentenceBoundary = regexp.MustCompile(`([.?!])\s+`)
)

const boundaryMarker = "\x1f"

// SummaryOptions tune the sentence heuristic. MinRunes is a strict
// lower bound: units must be longer than it to survive filtering.
type SummaryOptions struct {
	MaxSentences int
	MinRunes     int
}

// DefaultSummaryOptions returns the tuning the crawler ships with.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{MaxSentences: 3, MinRunes: 10}
}

// CollapseWhitespace squeezes every whitespace run down to a single
// space and trims the ends.
func CollapseWhitespace(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(input, " "))
}

// SplitSentences cuts collapsed text into sentence-like units at every
// whitespace run that follows '.', '?' or '!'. The punctuation mark
// stays attached to its sentence.
func SplitSentences(text string) []string {
	marked := sentenceBoundary.ReplaceAllString(text, "$1"+boundaryMarker)
	parts := strings.Split(marked, boundaryMarker)

	units := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			units = append(units, part)
		}
	}
	return units
}

// Summarize turns raw article text into a short synopsis: collapse
// whitespace, split into sentence-like units, drop units at or below
// MinRunes (noise fragments), keep the first MaxSentences survivors in
// original order. A lightweight proxy for the lede, not real NLP.
func Summarize(text string, opts SummaryOptions) string {
	if opts.MaxSentences <= 0 {
		opts.MaxSentences = 3
	}
	if opts.MinRunes < 0 {
		opts.MinRunes = 0
	}

	clean := CollapseWhitespace(text)
	if clean == "" {
		return ""
	}

	kept := make([]string, 0, opts.MaxSentences)
	for _, unit := range SplitSentences(clean) {
		// Rune count, not bytes, so CJK text is measured fairly.
		if utf8.RuneCountInString(unit) <= opts.MinRunes {
			continue
		}
		kept = append(kept, unit)
		if len(kept) == opts.MaxSentences {
			break
		}
	}

	return strings.Join(kept, " ")
}

// DayKey formats the calendar day shared by every record of one run.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DocumentID builds the deterministic identity addressing a persisted
// record. A later run for the same day and category produces the same
// identity, which is what makes the overwrite idempotent.
func DocumentID(day, category string) string {
	return fmt.Sprintf("%s_%s", day, category)
}
