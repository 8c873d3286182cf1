package sources

import (
	"context"
	"log/slog"
	"net/http"

	"hustlewire/internal/types"
)

// RemoteOKSource reads the Remote OK job API. The first array element is a
// legal notice rather than a job posting; entries without both a url and a
// date are skipped, which filters it out without special-casing.
type RemoteOKSource struct {
	name       string
	apiURL     string
	httpClient *http.Client
	maxItems   int
}

type remoteokJob struct {
	Position string `json:"position"`
	URL      string `json:"url"`
	Date     string `json:"date"`
}

func NewRemoteOKSource(name, apiURL string, maxItems int) *RemoteOKSource {
	if apiURL == "" {
		apiURL = "https://remoteok.io/api"
	}
	if maxItems <= 0 {
		maxItems = 5
	}

	return &RemoteOKSource{
		name:       name,
		apiURL:     apiURL,
		httpClient: newHTTPClient(),
		maxItems:   maxItems,
	}
}

func (r *RemoteOKSource) Name() string {
	return r.name
}

func (r *RemoteOKSource) Fetch(ctx context.Context) ([]types.Item, error) {
	var jobs []remoteokJob
	if err := fetchJSON(ctx, r.httpClient, r.apiURL, &jobs); err != nil {
		return nil, err
	}

	slog.Debug("remoteok source retrieved entries", "source", r.name, "count", len(jobs))

	items := make([]types.Item, 0, r.maxItems)
	for _, job := range jobs {
		if len(items) >= r.maxItems {
			break
		}

		if job.URL == "" || job.Date == "" {
			continue
		}

		items = append(items, types.Item{
			Title:      job.Position,
			URL:        job.URL,
			CreatedUTC: job.Date,
			Source:     normalizeSource(r.name),
		})
	}

	return items, nil
}
