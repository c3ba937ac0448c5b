package douban

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mediashelf/internal/logging"
	"mediashelf/internal/media"
	"mediashelf/internal/textutil"
)

// SearchResult is one entry of the mobile search listing.
type SearchResult struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Category    media.Category `json:"category"`
	Score       float64        `json:"score"`
	URL         string         `json:"url"`
	CoverURL    string         `json:"cover_url"`
	Year        string         `json:"year"`
	Description string         `json:"description"`
	Artist      string         `json:"artist,omitempty"`
	Director    string         `json:"director,omitempty"`
	Cast        string         `json:"cast,omitempty"`
	Author      string         `json:"author,omitempty"`
	Publisher   string         `json:"publisher,omitempty"`
}

var subjectIDPattern = regexp.MustCompile(`/subject/([^/?#]+)`)

// Search queries the mobile search page. An empty category searches every
// category; otherwise results of other categories are dropped.
func (c *Client) Search(ctx context.Context, keyword string, category media.Category) ([]SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("query must not be empty")
	}
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("unsupported category %q", category)
	}
	if c.searchBase == "" {
		return nil, errors.New("douban search base url not configured")
	}
	endpoint, err := url.Parse(c.searchBase + "/search/")
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	params := url.Values{}
	params.Set("query", keyword)
	if category != "" {
		params.Set("type", string(category))
	}
	endpoint.RawQuery = params.Encode()

	body, err := c.get(ctx, endpoint.String(), c.mobileHeaders())
	if err != nil {
		return nil, err
	}
	results, err := ParseSearch(body, category)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("search parsed",
		logging.String("query", keyword),
		logging.String(logging.FieldCategory, string(category)),
		logging.Int("results", len(results)),
	)
	return results, nil
}

// ParseSearch extracts result entries from a mobile search page.
func ParseSearch(markup string, category media.Category) ([]SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	items := doc.Find("ul.search_results_subjects > li")
	if items.Length() == 0 {
		items = doc.Find("li.subject-item")
	}
	if items.Length() == 0 {
		items = doc.Find(".search_results_subjects a")
	}

	results := make([]SearchResult, 0, items.Length())
	items.Each(func(_ int, item *goquery.Selection) {
		result, ok := parseSearchItem(item)
		if !ok {
			return
		}
		if category != "" && result.Category != category {
			return
		}
		results = append(results, result)
	})
	return results, nil
}

func parseSearchItem(item *goquery.Selection) (SearchResult, bool) {
	link := item
	if goquery.NodeName(item) != "a" {
		link = item.Find("a").First()
	}
	if link.Length() == 0 {
		return SearchResult{}, false
	}

	title := textutil.CollapseSpace(link.Find(".subject-title").First().Text())
	if title == "" {
		title = textutil.CollapseSpace(link.Text())
	}
	if title == "" {
		return SearchResult{}, false
	}

	href, _ := link.Attr("href")
	result := SearchResult{
		Title:    title,
		URL:      href,
		Category: categoryFromURL(href),
	}
	if match := subjectIDPattern.FindStringSubmatch(href); len(match) == 2 {
		result.ID = match[1]
	}
	if src, ok := item.Find("img").First().Attr("src"); ok {
		result.CoverURL = strings.TrimSpace(src)
	}
	if score, err := strconv.ParseFloat(strings.TrimSpace(item.Find(".rating").First().Text()), 64); err == nil {
		result.Score = score
	}
	result.Description = textutil.CollapseSpace(item.Find(".subject-desc").First().Text())
	result.Year = textutil.FirstYear(result.Description)

	parts := strings.Split(result.Description, "/")
	part := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	switch result.Category {
	case media.CategoryMusic:
		result.Artist = part(0)
	case media.CategoryMovie:
		result.Director = part(0)
		result.Cast = part(1)
	case media.CategoryBook:
		result.Author = part(0)
		if len(parts) > 2 {
			result.Publisher = part(2)
		} else {
			result.Publisher = part(1)
		}
	}
	return result, true
}

func categoryFromURL(href string) media.Category {
	switch {
	case strings.Contains(href, "movie"):
		return media.CategoryMovie
	case strings.Contains(href, "book"):
		return media.CategoryBook
	case strings.Contains(href, "music"):
		return media.CategoryMusic
	default:
		return ""
	}
}
