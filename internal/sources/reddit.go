package sources

import (
	"context"
	"log/slog"
	"net/http"

	"hustlewire/internal/types"
)

// RedditSource reads a subreddit's "new" JSON listing. Permalinks are
// relative, so item URLs are rebuilt against reddit.com.
type RedditSource struct {
	name       string
	listingURL string
	linkBase   string
	httpClient *http.Client
	maxItems   int
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string  `json:"title"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

func NewRedditSource(name, listingURL string, maxItems int) *RedditSource {
	if listingURL == "" {
		listingURL = "https://www.reddit.com/r/sidehustle/new.json"
	}
	if maxItems <= 0 {
		maxItems = 10
	}

	return &RedditSource{
		name:       name,
		listingURL: listingURL,
		linkBase:   "https://www.reddit.com",
		httpClient: newHTTPClient(),
		maxItems:   maxItems,
	}
}

func (r *RedditSource) Name() string {
	return r.name
}

func (r *RedditSource) Fetch(ctx context.Context) ([]types.Item, error) {
	var listing redditListing
	if err := fetchJSON(ctx, r.httpClient, r.listingURL, &listing); err != nil {
		return nil, err
	}

	children := listing.Data.Children
	slog.Debug("reddit source retrieved posts", "source", r.name, "count", len(children))

	items := make([]types.Item, 0, r.maxItems)
	for _, child := range children {
		if len(items) >= r.maxItems {
			break
		}

		post := child.Data
		if post.Permalink == "" {
			continue
		}

		items = append(items, types.Item{
			Title:      post.Title,
			URL:        r.linkBase + post.Permalink,
			CreatedUTC: formatEpoch(int64(post.CreatedUTC)),
			Source:     normalizeSource(r.name),
		})
	}

	return items, nil
}
