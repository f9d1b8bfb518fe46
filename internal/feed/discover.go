package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var feedPatterns = []string{
	"/feed",
	"/feed.xml",
	"/atom.xml",
	"/rss.xml",
	"/rss",
	"/index.xml",
}

const feedLinkSelector = `link[type="application/rss+xml"], link[type="application/atom+xml"]`

// Discover finds the feed advertised by an HTML page, falling back to the
// usual feed paths of the site.
func Discover(ctx context.Context, client *http.Client, siteURL string) (string, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site url %s: %w", siteURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err == nil {
		defer resp.Body.Close()
		doc, derr := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 1024*1024))
		if derr == nil {
			if href, ok := doc.Find(feedLinkSelector).First().Attr("href"); ok && href != "" {
				ref, perr := url.Parse(href)
				if perr == nil {
					return base.ResolveReference(ref).String(), nil
				}
			}
		}
	}

	baseURL := strings.TrimSuffix(siteURL, "/")
	for _, pattern := range feedPatterns {
		feedURL := baseURL + pattern
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, feedURL, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return feedURL, nil
		}
	}

	return "", fmt.Errorf("could not discover feed for %s", siteURL)
}
