package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/julienpequegnot/slopmon/internal/corpus"
)

type FetchedPost struct {
	ID      string
	URL     string
	Content string
}

// Supplier turns the entries of RSS/Atom feeds into corpus lines. Every entry
// is delivered once per session.
type Supplier struct {
	urls     []string
	parser   *gofeed.Parser
	client   *http.Client
	timeout  time.Duration
	seen     map[string]bool
	resolved map[string]string
}

func NewSupplier(urls []string, timeout time.Duration, userAgent string) *Supplier {
	client := &http.Client{Timeout: timeout}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent

	return &Supplier{
		urls:     urls,
		parser:   parser,
		client:   client,
		timeout:  timeout,
		seen:     make(map[string]bool),
		resolved: make(map[string]string),
	}
}

// Poll fetches every feed and returns the entries not delivered before.
// A feed that fails is recorded in the batch without stopping the others.
func (s *Supplier) Poll(ctx context.Context) (corpus.Batch, error) {
	var batch corpus.Batch
	for _, u := range s.urls {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		posts, err := s.FetchFeed(ctx, u)
		if err != nil {
			batch.Errors = append(batch.Errors, err)
			continue
		}

		for _, p := range posts {
			if s.seen[p.ID] {
				continue
			}
			s.seen[p.ID] = true

			lines := TextLines(p.Content)
			if len(lines) == 0 {
				continue
			}
			batch.Items = append(batch.Items, corpus.Item{Name: p.URL, Lines: lines})
		}
	}
	return batch, nil
}

// FetchFeed parses the feed at feedURL. When the URL points at an HTML page
// instead of a feed, the page's advertised feed is used and remembered.
func (s *Supplier) FetchFeed(ctx context.Context, feedURL string) ([]FetchedPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	target := feedURL
	if r, ok := s.resolved[feedURL]; ok {
		target = r
	}

	feed, err := s.parser.ParseURLWithContext(target, ctx)
	if errors.Is(err, gofeed.ErrFeedTypeNotDetected) && target == feedURL {
		discovered, derr := Discover(ctx, s.client, feedURL)
		if derr != nil {
			return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
		}
		s.resolved[feedURL] = discovered
		feed, err = s.parser.ParseURLWithContext(discovered, ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	var posts []FetchedPost
	for _, item := range feed.Items {
		post := FetchedPost{
			ID:  item.GUID,
			URL: item.Link,
		}
		if post.ID == "" {
			post.ID = item.Link
		}
		if post.ID == "" {
			post.ID = feedURL + "#" + item.Title
		}
		if post.URL == "" {
			post.URL = post.ID
		}

		if item.Content != "" {
			post.Content = item.Content
		} else {
			post.Content = item.Description
		}

		posts = append(posts, post)
	}

	return posts, nil
}

// paragraphBreak marks block boundaries while flattening HTML.
const paragraphBreak = "\u2029"

const blockSelector = "p, div, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr, section, article"

// TextLines flattens an HTML fragment into one line per block element,
// with whitespace collapsed. Empty lines are dropped.
func TextLines(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return plainLines(html)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml(paragraphBreak)
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		sel.BeforeHtml(paragraphBreak)
		sel.AfterHtml(paragraphBreak)
	})

	return plainLines(doc.Text())
}

func plainLines(text string) []string {
	var lines []string
	for _, part := range strings.Split(text, paragraphBreak) {
		if line := strings.Join(strings.Fields(part), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
