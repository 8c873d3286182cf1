package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hustlewire/internal/ingest"
	"hustlewire/internal/recommend"
)

// Runner drives the two batch jobs on a fixed interval: an ingestion pass
// followed by a selection pass. The selector's day-level gate makes the
// per-tick selection call a no-op for the rest of the day.
type Runner struct {
	name     string
	pipeline *ingest.Pipeline
	selector *recommend.Selector
	interval time.Duration
	runOnce  bool
	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
}

type RunnerConfig struct {
	Name     string
	Pipeline *ingest.Pipeline
	Selector *recommend.Selector
	Interval time.Duration
	RunOnce  bool
}

func NewRunner(config RunnerConfig) *Runner {
	if config.Interval == 0 {
		config.Interval = time.Hour
	}

	return &Runner{
		name:     config.Name,
		pipeline: config.Pipeline,
		selector: config.Selector,
		interval: config.Interval,
		runOnce:  config.RunOnce,
		stopCh:   make(chan struct{}),
	}
}

func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("runner already running")
	}
	r.running = true
	r.mu.Unlock()

	defer r.markStopped()

	r.executeRun(ctx)

	if r.runOnce {
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stopCh:
			return nil
		case <-ticker.C:
			r.executeRun(ctx)
		}
	}
}

func (r *Runner) executeRun(ctx context.Context) {
	inserted, err := r.pipeline.Run(ctx)
	if err != nil {
		slog.Error("ingestion run failed", "runner", r.name, "inserted", inserted, "error", err)
	}

	generated, err := r.selector.Run(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("selection run failed", "runner", r.name, "generated", generated, "error", err)
	}
}

func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	close(r.stopCh)
}

func (r *Runner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

func (r *Runner) markStopped() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}
