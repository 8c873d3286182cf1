package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"hustlewire/internal/types"
)

// DevtoSource queries the dev.to articles API filtered by tag.
type DevtoSource struct {
	name       string
	baseURL    string
	tag        string
	httpClient *http.Client
	maxItems   int
}

type devtoArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

func NewDevtoSource(name, baseURL, tag string, maxItems int) *DevtoSource {
	if baseURL == "" {
		baseURL = "https://dev.to"
	}
	if tag == "" {
		tag = "sidehustle"
	}
	if maxItems <= 0 {
		maxItems = 5
	}

	return &DevtoSource{
		name:       name,
		baseURL:    baseURL,
		tag:        tag,
		httpClient: newHTTPClient(),
		maxItems:   maxItems,
	}
}

func (d *DevtoSource) Name() string {
	return d.name
}

func (d *DevtoSource) Fetch(ctx context.Context) ([]types.Item, error) {
	endpoint := fmt.Sprintf("%s/api/articles?tag=%s&per_page=%d",
		d.baseURL, url.QueryEscape(d.tag), d.maxItems)

	var articles []devtoArticle
	if err := fetchJSON(ctx, d.httpClient, endpoint, &articles); err != nil {
		return nil, err
	}

	slog.Debug("devto source retrieved articles", "source", d.name, "count", len(articles))

	items := make([]types.Item, 0, d.maxItems)
	for _, article := range articles {
		if len(items) >= d.maxItems {
			break
		}

		if article.URL == "" {
			continue
		}

		items = append(items, types.Item{
			Title:      article.Title,
			URL:        article.URL,
			CreatedUTC: article.PublishedAt,
			Source:     normalizeSource(d.name),
		})
	}

	return items, nil
}
