package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"hustlewire/internal/types"
)

// HackerNewsSource fetches the ranked story ID list, then one follow-up
// request per ID. Stories without a title or an external URL don't count
// against the limit; the fan-out stops as soon as maxItems valid stories
// are in hand, scanning at most 2*maxItems IDs.
type HackerNewsSource struct {
	name       string
	apiURL     string
	httpClient *http.Client
	maxItems   int
	storyType  string
}

type hnStory struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Time  int64  `json:"time"`
}

func NewHackerNewsSource(name, apiURL, storyType string, maxItems int) *HackerNewsSource {
	if apiURL == "" {
		apiURL = "https://hacker-news.firebaseio.com/v0"
	}
	if storyType == "" {
		storyType = "topstories"
	}
	if maxItems <= 0 {
		maxItems = 5
	}

	return &HackerNewsSource{
		name:       name,
		apiURL:     apiURL,
		httpClient: newHTTPClient(),
		maxItems:   maxItems,
		storyType:  storyType,
	}
}

func (h *HackerNewsSource) Name() string {
	return h.name
}

func (h *HackerNewsSource) Fetch(ctx context.Context) ([]types.Item, error) {
	var storyIDs []int64
	if err := fetchJSON(ctx, h.httpClient, fmt.Sprintf("%s/%s.json", h.apiURL, h.storyType), &storyIDs); err != nil {
		return nil, err
	}

	slog.Debug("hackernews source retrieved story IDs", "source", h.name, "count", len(storyIDs))

	scan := h.maxItems * 2
	if scan > len(storyIDs) {
		scan = len(storyIDs)
	}

	items := make([]types.Item, 0, h.maxItems)
	for i := 0; i < scan && len(items) < h.maxItems; i++ {
		select {
		case <-ctx.Done():
			return items, ctx.Err()
		default:
		}

		var story hnStory
		if err := fetchJSON(ctx, h.httpClient, fmt.Sprintf("%s/item/%d.json", h.apiURL, storyIDs[i]), &story); err != nil {
			slog.Debug("hackernews source error fetching story", "source", h.name, "id", storyIDs[i], "error", err)
			continue
		}

		if story.Title == "" || story.URL == "" {
			continue
		}

		items = append(items, types.Item{
			Title:      story.Title,
			URL:        story.URL,
			CreatedUTC: formatEpoch(story.Time),
			Source:     normalizeSource(h.name),
		})
	}

	return items, nil
}
