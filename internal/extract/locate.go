package extract

import (
	"errors"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoMatch reports that none of the ordered patterns matched.
// Callers treat it as "skip this category for this run", not as a hard
// failure.
var ErrNoMatch = errors.New("no pattern matched")

// Locate tries each selector pattern strictly in order and returns the
// first element, in document order, of the first pattern that yields
// at least one hit. Later patterns are never consulted once one
// succeeds. The ordered chain absorbs markup drift across the
// aggregator's rollouts without coupling to a single selector.
func Locate(doc *goquery.Document, patterns []string) (*goquery.Selection, error) {
	for _, pattern := range patterns {
		if sel := doc.Find(pattern); sel.Length() > 0 {
			return sel.First(), nil
		}
	}
	return nil, ErrNoMatch
}
