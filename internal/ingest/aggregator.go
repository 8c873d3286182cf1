package ingest

import (
	"context"
	"log/slog"
	"sync"

	"hustlewire/internal/types"
)

// Aggregator fans out to every configured source and concatenates their
// output in the fixed order the sources were registered in.
type Aggregator struct {
	sources []types.Source
}

func NewAggregator(sources []types.Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// GatherAll fetches all sources concurrently and waits for every one of
// them (each bounded by its own HTTP timeout). A failing source is logged
// and contributes nothing; GatherAll itself never fails.
func (a *Aggregator) GatherAll(ctx context.Context) []types.Item {
	results := make([][]types.Item, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src types.Source) {
			defer wg.Done()

			items, err := src.Fetch(ctx)
			if err != nil {
				slog.Error("source fetch failed", "source", src.Name(), "error", err)
				return
			}

			slog.Debug("source fetch completed", "source", src.Name(), "count", len(items))
			results[i] = items
		}(i, src)
	}
	wg.Wait()

	var all []types.Item
	for _, items := range results {
		all = append(all, items...)
	}
	return all
}
