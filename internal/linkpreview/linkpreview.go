// Package linkpreview finds the link inside reminder text and looks up its page title.
package linkpreview

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	urlRegex    = regexp.MustCompile(`(?i)\bhttps?://[^\s<>"']+`)
	domainRegex = regexp.MustCompile(`(?i)^(?:www\.)?[a-z0-9-]+(?:\.[a-z0-9-]+)*\.[a-z]{2,}(?:/\S*)?$`)
)

// LinkFor returns the URL following a notification for text should open.
// It is the first http(s) URL in text, or a lone domain-like token upgraded to https.
func LinkFor(text string) string {
	if match := urlRegex.FindString(text); match != "" {
		return strings.TrimRight(match, ".,;:!?)")
	}

	fields := strings.Fields(text)
	if len(fields) == 1 && domainRegex.MatchString(fields[0]) {
		return "https://" + fields[0]
	}
	return ""
}

// Fetcher downloads pages to read their titles.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with a 10 second timeout when client is nil.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{client: client}
}

// Title returns the og:title of the page at link, falling back to <title>.
func (f *Fetcher) Title(ctx context.Context, link string) (string, error) {
	if _, err := url.ParseRequestURI(link); err != nil {
		return "", fmt.Errorf("invalid link %q: %w", link, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "linkLater/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: status %d", link, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", link, err)
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(og) != "" {
		return collapse(og), nil
	}
	title := collapse(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("no title at %s", link)
	}
	return title, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
