package extract

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jiwoolab/naver-top-news/internal/models"
	"github.com/jiwoolab/naver-top-news/internal/processing"
)

// ErrNoAnchor reports a candidate without an addressable article link.
// Without one, enrichment and persistence cannot proceed, so the whole
// extraction fails rather than yielding a partial record.
var ErrNoAnchor = errors.New("candidate has no anchor")

// attrQuery pairs a selector with the attribute to read; an empty Attr
// means the element's visible text.
type attrQuery struct {
	Selector string
	Attr     string
}

// stylePatterns holds the ordered fallback chains for one listing
// style. Ranking pages and section fronts drift independently, so each
// style carries its own chains.
type stylePatterns struct {
	Items      []string
	Thumbnails []string
	Sources    []string
}

var listingPatterns = map[models.ListingStyle]stylePatterns{
	models.StyleRanking: {
		Items:      []string{".rankingnews_list li", ".list_ranking li"},
		Thumbnails: []string{".list_img img", "img"},
		Sources:    []string{".rankingnews_name", ".writing"},
	},
	models.StyleSection: {
		Items:      []string{".sa_list .sa_item", ".section_article .sa_item", ".list_body li"},
		Thumbnails: []string{".sa_thumb img", "img"},
		Sources:    []string{".sa_text_press", ".press"},
	},
}

// ItemPatterns returns the candidate-item chain for a listing style.
func ItemPatterns(style models.ListingStyle) []string {
	return listingPatterns[style].Items
}

// Fields pulls title, link, thumbnail and source from a located
// candidate element. Thumbnail and source may come back empty; the
// enricher gets a chance to backfill them later.
func Fields(item *goquery.Selection, style models.ListingStyle, origin string) (models.NewsCandidate, error) {
	patterns := listingPatterns[style]

	anchor := item.Find("a").First()
	if anchor.Length() == 0 {
		return models.NewsCandidate{}, ErrNoAnchor
	}

	link := strings.TrimSpace(anchor.AttrOr("href", ""))
	if link == "" {
		return models.NewsCandidate{}, ErrNoAnchor
	}

	return models.NewsCandidate{
		Title:        processing.CollapseWhitespace(anchor.Text()),
		Link:         absoluteURL(link, origin),
		ThumbnailURL: firstImageURL(item, patterns.Thumbnails),
		Source:       firstText(item, patterns.Sources),
	}, nil
}

// absoluteURL rewrites scheme-less links against the canonical origin.
// Already-absolute links pass through untouched.
func absoluteURL(link, origin string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.IsAbs() {
		return link
	}
	base, err := url.Parse(origin)
	if err != nil {
		return link
	}
	return base.ResolveReference(parsed).String()
}

// firstImageURL walks the image regions in order. Within a region the
// lazy-load attribute wins over src: on lazy pages src holds a
// placeholder while data-src carries the real URL.
func firstImageURL(root *goquery.Selection, regions []string) string {
	for _, region := range regions {
		img := root.Find(region).First()
		if img.Length() == 0 {
			continue
		}
		if v := strings.TrimSpace(img.AttrOr("data-src", "")); v != "" {
			return v
		}
		if v := strings.TrimSpace(img.AttrOr("src", "")); v != "" {
			return v
		}
	}
	return ""
}

// firstText returns the first non-empty trimmed text among the regions.
func firstText(root *goquery.Selection, regions []string) string {
	for _, region := range regions {
		if text := processing.CollapseWhitespace(root.Find(region).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
