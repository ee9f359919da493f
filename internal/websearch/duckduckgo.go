// Package websearch fetches a handful of live search results to ground
// answers about current events that the document corpus cannot cover.
package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client queries the DuckDuckGo HTML endpoint, which serves plain markup
// without requiring an API key.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a search client. baseURL normally points at
// https://html.duckduckgo.com and is overridable for tests.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Search returns up to n results formatted as "Title: snippet" lines, one
// result per line, ready to be pasted into a prompt as context.
func (c *Client) Search(ctx context.Context, query string, n int) (string, error) {
	endpoint := fmt.Sprintf("%s/html/?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse search results: %w", err)
	}

	lines := make([]string, 0, n)
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find(".result__a").First().Text())
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())
		if title == "" && snippet == "" {
			return true
		}
		lines = append(lines, fmt.Sprintf("%s: %s", title, snippet))
		return len(lines) < n
	})
	return strings.Join(lines, "\n"), nil
}
