package models

import "time"

// ListingStyle selects the pattern tables used to read a listing page.
// Ranking pages and section fronts carry the same information in
// different markup, so one engine handles both, parameterized by style.
type ListingStyle string

const (
	StyleRanking ListingStyle = "ranking"
	StyleSection ListingStyle = "section"
)

// CategorySpec describes one editorial category to crawl. The table is
// loaded once at process start and never mutated afterwards.
type CategorySpec struct {
	Key        string       `yaml:"key"`
	Name       string       `yaml:"name"`
	ListingURL string       `yaml:"url"`
	Style      ListingStyle `yaml:"style"`
}

// NewsCandidate holds the fields located on a listing page. Link is
// always absolute; ThumbnailURL and Source may be empty.
type NewsCandidate struct {
	Title        string
	Link         string
	ThumbnailURL string
	Source       string
}

// Enrichment carries the data pulled from the article's own page. The
// zero value is a valid "nothing found" result.
type Enrichment struct {
	Summary  string
	ImageURL string
	Source   string
}

// NewsRecord is the persisted unit: exactly one per (day, category)
// after a successful run. Field names match the document schema the
// app frontend reads.
type NewsRecord struct {
	Category  string    `firestore:"category" json:"category"`
	Title     string    `firestore:"title" json:"title"`
	Link      string    `firestore:"link" json:"link"`
	ImageURL  string    `firestore:"imageUrl" json:"imageUrl"`
	Source    string    `firestore:"source" json:"source"`
	Summary   string    `firestore:"summary" json:"summary"`
	Date      time.Time `firestore:"date" json:"date"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
