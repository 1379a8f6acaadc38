package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jiwoolab/naver-top-news/internal/models"
)

// DefaultCategories mirrors the category table the crawler shipped
// with: four ranking pages on the aggregator.
func DefaultCategories() []models.CategorySpec {
	return []models.CategorySpec{
		{
			Key:        "economy",
			Name:       "경제",
			ListingURL: "https://news.naver.com/main/ranking/popularDay.naver?mid=etc&sid1=101",
			Style:      models.StyleRanking,
		},
		{
			Key:        "realestate",
			Name:       "부동산",
			ListingURL: "https://news.naver.com/main/ranking/popularDay.naver?mid=etc&sid1=101&sid2=260",
			Style:      models.StyleRanking,
		},
		{
			Key:        "stock",
			Name:       "주식",
			ListingURL: "https://news.naver.com/main/ranking/popularDay.naver?mid=etc&sid1=101&sid2=258",
			Style:      models.StyleRanking,
		},
		{
			Key:        "it",
			Name:       "IT",
			ListingURL: "https://news.naver.com/main/ranking/popularDay.naver?mid=etc&sid1=105",
			Style:      models.StyleRanking,
		},
	}
}

// LoadCategories returns the category table. An empty path selects the
// built-in defaults; otherwise the YAML file replaces them entirely.
func LoadCategories(path string) ([]models.CategorySpec, error) {
	if path == "" {
		return DefaultCategories(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var parsed struct {
		Categories []models.CategorySpec `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	if len(parsed.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}

	seen := make(map[string]struct{}, len(parsed.Categories))
	for i := range parsed.Categories {
		cat := &parsed.Categories[i]
		if cat.Key == "" || cat.ListingURL == "" {
			return nil, fmt.Errorf("category %d: key and url are required", i)
		}
		if _, dup := seen[cat.Key]; dup {
			return nil, fmt.Errorf("duplicate category key %q", cat.Key)
		}
		seen[cat.Key] = struct{}{}

		if cat.Style == "" {
			cat.Style = models.StyleRanking
		}
		if cat.Style != models.StyleRanking && cat.Style != models.StyleSection {
			return nil, fmt.Errorf("category %q: unknown listing style %q", cat.Key, cat.Style)
		}
	}

	return parsed.Categories, nil
}
