package sources

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"hustlewire/internal/types"
)

// RSSSource parses one RSS or Atom feed and takes the first maxItems
// entries in feed order.
type RSSSource struct {
	name     string
	feedURL  string
	parser   *gofeed.Parser
	maxItems int
}

func NewRSSSource(name, feedURL string, maxItems int) *RSSSource {
	if maxItems <= 0 {
		maxItems = 5
	}

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &RSSSource{
		name:     name,
		feedURL:  feedURL,
		parser:   parser,
		maxItems: maxItems,
	}
}

func (r *RSSSource) Name() string {
	return r.name
}

func (r *RSSSource) Fetch(ctx context.Context) ([]types.Item, error) {
	feed, err := r.parser.ParseURLWithContext(r.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	slog.Debug("rss source retrieved entries", "source", r.name, "count", len(feed.Items))

	limit := r.maxItems
	if limit > len(feed.Items) {
		limit = len(feed.Items)
	}

	items := make([]types.Item, 0, limit)
	for _, entry := range feed.Items[:limit] {
		if entry.Link == "" {
			continue
		}

		published := entry.Published
		if published == "" {
			published = entry.Updated
		}

		items = append(items, types.Item{
			Title:      cleanTitle(entry.Title),
			URL:        entry.Link,
			CreatedUTC: published,
			Source:     normalizeSource(r.name),
		})
	}

	return items, nil
}

var htmlStripper = bluemonday.StrictPolicy()

// cleanTitle removes stray markup and decodes entities that some feeds
// embed in entry titles.
func cleanTitle(s string) string {
	s = htmlStripper.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
