package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"hustlewire/internal/storage"
)

// Pipeline is one ingestion pass: snapshot existing urls, gather
// candidates from every source, filter to the genuinely new ones, and
// persist them. Re-running against an unchanged external data set inserts
// nothing.
type Pipeline struct {
	aggregator *Aggregator
	posts      storage.PostStore
}

func NewPipeline(aggregator *Aggregator, posts storage.PostStore) *Pipeline {
	return &Pipeline{
		aggregator: aggregator,
		posts:      posts,
	}
}

// Run returns the number of rows actually persisted. Only whole-store
// failure is an error, and the partial count is still reported.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	existing, err := p.posts.ExistingURLs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to snapshot existing urls: %w", err)
	}

	candidates := p.aggregator.GatherAll(ctx)
	slog.Info("gathered candidates", "count", len(candidates))

	fresh := FilterNew(candidates, existing)
	slog.Info("new candidates after dedup", "count", len(fresh))

	if len(fresh) == 0 {
		return 0, nil
	}

	inserted, err := p.posts.InsertNew(ctx, fresh)
	if err != nil {
		return inserted, fmt.Errorf("failed to insert posts: %w", err)
	}

	slog.Info("ingestion run completed", "inserted", inserted)
	return inserted, nil
}
