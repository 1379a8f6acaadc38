package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jiwoolab/naver-top-news/internal/config"
)

func clearCrawlerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FIRESTORE_PROJECT_ID",
		"FIRESTORE_COLLECTION",
		"FIREBASE_SERVICE_ACCOUNT",
		"GOOGLE_APPLICATION_CREDENTIALS",
		"NEWS_ORIGIN",
		"CRAWLER_CATEGORIES_FILE",
		"CRAWLER_FETCH_TIMEOUT",
		"CRAWLER_SUMMARY_SENTENCES",
		"CRAWLER_SUMMARY_MIN_LEN",
		"CRAWLER_CONCURRENCY",
		"CRAWLER_INTERVAL",
		"CRAWLER_ENRICH_CACHE_SIZE",
		"CRAWLER_ENRICH_CACHE_TTL",
		"RETENTION_MAX_AGE",
		"RETENTION_INTERVAL",
		"RETENTION_BATCH_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadCrawlerDefaults(t *testing.T) {
	clearCrawlerEnv(t)

	cfg, err := config.LoadCrawler()
	require.NoError(t, err)

	require.Equal(t, "news", cfg.Firestore.Collection)
	require.Equal(t, "serviceAccountKey.json", cfg.Firestore.CredentialsFile)
	require.Equal(t, "https://news.naver.com", cfg.Origin)
	require.Equal(t, 10*time.Second, cfg.FetchTimeout)
	require.Equal(t, 3, cfg.SummaryMaxSentences)
	require.Equal(t, 10, cfg.SummaryMinRunes)
	require.Equal(t, 1, cfg.Concurrency)
	require.Equal(t, time.Duration(0), cfg.Interval)
	require.Equal(t, 256, cfg.EnrichCacheSize)
	require.Equal(t, 6*time.Hour, cfg.EnrichCacheTTL)
}

func TestLoadCrawlerOverrides(t *testing.T) {
	clearCrawlerEnv(t)
	t.Setenv("FIRESTORE_PROJECT_ID", "demo-project")
	t.Setenv("FIRESTORE_COLLECTION", "topnews")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT", `{"type":"service_account"}`)
	t.Setenv("NEWS_ORIGIN", "https://m.news.example.com")
	t.Setenv("CRAWLER_FETCH_TIMEOUT", "3s")
	t.Setenv("CRAWLER_SUMMARY_SENTENCES", "2")
	t.Setenv("CRAWLER_SUMMARY_MIN_LEN", "15")
	t.Setenv("CRAWLER_CONCURRENCY", "4")
	t.Setenv("CRAWLER_INTERVAL", "1h")

	cfg, err := config.LoadCrawler()
	require.NoError(t, err)

	require.Equal(t, "demo-project", cfg.Firestore.ProjectID)
	require.Equal(t, "topnews", cfg.Firestore.Collection)
	require.Equal(t, `{"type":"service_account"}`, cfg.Firestore.CredentialsJSON)
	require.Equal(t, "https://m.news.example.com", cfg.Origin)
	require.Equal(t, 3*time.Second, cfg.FetchTimeout)
	require.Equal(t, 2, cfg.SummaryMaxSentences)
	require.Equal(t, 15, cfg.SummaryMinRunes)
	require.Equal(t, 4, cfg.Concurrency)
	require.Equal(t, time.Hour, cfg.Interval)
}

func TestLoadCrawlerValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "relative origin", key: "NEWS_ORIGIN", value: "news.naver.com"},
		{name: "zero sentences", key: "CRAWLER_SUMMARY_SENTENCES", value: "0"},
		{name: "negative min length", key: "CRAWLER_SUMMARY_MIN_LEN", value: "-1"},
		{name: "zero concurrency", key: "CRAWLER_CONCURRENCY", value: "0"},
		{name: "negative interval", key: "CRAWLER_INTERVAL", value: "-5m"},
		{name: "negative cache size", key: "CRAWLER_ENRICH_CACHE_SIZE", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCrawlerEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.LoadCrawler()
			require.Error(t, err)
		})
	}
}

func TestLoadRetentionDefaults(t *testing.T) {
	clearCrawlerEnv(t)

	cfg, err := config.LoadRetention()
	require.NoError(t, err)

	require.Equal(t, "news", cfg.Firestore.Collection)
	require.Equal(t, 2160*time.Hour, cfg.MaxAge)
	require.Equal(t, 24*time.Hour, cfg.Interval)
	require.Equal(t, 100, cfg.BatchSize)
}

func TestLoadRetentionValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative max age", key: "RETENTION_MAX_AGE", value: "-1h"},
		{name: "zero interval", key: "RETENTION_INTERVAL", value: "0s"},
		{name: "zero batch size", key: "RETENTION_BATCH_SIZE", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCrawlerEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.LoadRetention()
			require.Error(t, err)
		})
	}
}
