package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Firestore groups the document-store connection settings shared by
// every binary that writes to or prunes the collection.
type Firestore struct {
	ProjectID       string
	Collection      string
	CredentialsJSON string
	CredentialsFile string
}

func loadFirestore() Firestore {
	return Firestore{
		ProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
		Collection:      getEnv("FIRESTORE_COLLECTION", "news"),
		CredentialsJSON: os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", "serviceAccountKey.json"),
	}
}

// Crawler holds configuration for the news crawler binary.
type Crawler struct {
	Firestore Firestore

	Origin         string
	CategoriesFile string

	FetchTimeout        time.Duration
	SummaryMaxSentences int
	SummaryMinRunes     int
	Concurrency         int
	Interval            time.Duration

	EnrichCacheSize int
	EnrichCacheTTL  time.Duration
}

// LoadCrawler builds a Crawler config from environment variables.
func LoadCrawler() (*Crawler, error) {
	c := &Crawler{
		Firestore:           loadFirestore(),
		Origin:              getEnv("NEWS_ORIGIN", "https://news.naver.com"),
		CategoriesFile:      getEnv("CRAWLER_CATEGORIES_FILE", ""),
		FetchTimeout:        getDuration("CRAWLER_FETCH_TIMEOUT", "10s"),
		SummaryMaxSentences: getInt("CRAWLER_SUMMARY_SENTENCES", 3),
		SummaryMinRunes:     getInt("CRAWLER_SUMMARY_MIN_LEN", 10),
		Concurrency:         getInt("CRAWLER_CONCURRENCY", 1),
		Interval:            getDuration("CRAWLER_INTERVAL", "0s"),
		EnrichCacheSize:     getInt("CRAWLER_ENRICH_CACHE_SIZE", 256),
		EnrichCacheTTL:      getDuration("CRAWLER_ENRICH_CACHE_TTL", "6h"),
	}

	if !strings.HasPrefix(c.Origin, "http://") && !strings.HasPrefix(c.Origin, "https://") {
		return nil, fmt.Errorf("NEWS_ORIGIN must be an absolute http(s) origin")
	}
	if c.FetchTimeout <= 0 {
		return nil, fmt.Errorf("CRAWLER_FETCH_TIMEOUT must be positive")
	}
	if c.SummaryMaxSentences <= 0 {
		return nil, fmt.Errorf("CRAWLER_SUMMARY_SENTENCES must be positive")
	}
	if c.SummaryMinRunes < 0 {
		return nil, fmt.Errorf("CRAWLER_SUMMARY_MIN_LEN cannot be negative")
	}
	if c.Concurrency <= 0 {
		return nil, fmt.Errorf("CRAWLER_CONCURRENCY must be positive")
	}
	if c.Interval < 0 {
		return nil, fmt.Errorf("CRAWLER_INTERVAL cannot be negative")
	}
	if c.EnrichCacheSize < 0 {
		return nil, fmt.Errorf("CRAWLER_ENRICH_CACHE_SIZE cannot be negative")
	}
	if c.EnrichCacheTTL <= 0 {
		return nil, fmt.Errorf("CRAWLER_ENRICH_CACHE_TTL must be positive")
	}

	return c, nil
}

// Retention holds configuration for the retention binary, which prunes
// documents older than MaxAge from the collection.
type Retention struct {
	Firestore Firestore

	MaxAge    time.Duration
	Interval  time.Duration
	BatchSize int
}

// LoadRetention builds a Retention config from environment variables.
func LoadRetention() (*Retention, error) {
	c := &Retention{
		Firestore: loadFirestore(),
		MaxAge:    getDuration("RETENTION_MAX_AGE", "2160h"),
		Interval:  getDuration("RETENTION_INTERVAL", "24h"),
		BatchSize: getInt("RETENTION_BATCH_SIZE", 100),
	}

	if c.MaxAge <= 0 {
		return nil, fmt.Errorf("RETENTION_MAX_AGE must be positive")
	}
	if c.Interval <= 0 {
		return nil, fmt.Errorf("RETENTION_INTERVAL must be positive")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("RETENTION_BATCH_SIZE must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
