// Package news fetches club news headlines for the optional digest
// news section. The source page and CSS selector are configured, so the
// scraper stays usable when the club moves its news feed.
package news

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultSelector matches headline elements on most club news pages
	DefaultSelector = "h3"
	// DefaultLimit caps how many headlines make it into the digest
	DefaultLimit = 5

	userAgent = "matchday/1.0 (github.com/pcollins/matchday)"
	timeout   = 10 * time.Second
)

// Scraper fetches and parses headlines from one news page
type Scraper struct {
	client   *http.Client
	url      string
	selector string
	limit    int
}

// New creates a Scraper for the given page URL. An empty selector falls
// back to DefaultSelector; limit <= 0 falls back to DefaultLimit.
func New(url, selector string, limit int) *Scraper {
	if selector == "" {
		selector = DefaultSelector
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url:      url,
		selector: selector,
		limit:    limit,
	}
}

// Headlines fetches the page and returns up to limit unique headlines
// in page order.
func (s *Scraper) Headlines() ([]string, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	seen := make(map[string]bool)
	headlines := make([]string, 0, s.limit)

	doc.Find(s.selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" || len(text) < 10 || seen[text] {
			return true
		}
		seen[text] = true
		headlines = append(headlines, text)
		return len(headlines) < s.limit
	})

	return headlines, nil
}
