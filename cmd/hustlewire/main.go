package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hustlewire/internal/config"
	"hustlewire/internal/core"
	"hustlewire/internal/ingest"
	"hustlewire/internal/recommend"
	"hustlewire/internal/server"
	"hustlewire/internal/sources"
	"hustlewire/internal/storage"
	_ "hustlewire/internal/storage/sqlite"
)

var (
	configPath = flag.String("config", "config.toml", "Path to configuration file")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Printf("\nReceived signal: %v\n", sig)
		cancel()
	}()

	if err := run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close(context.Background())

	command := "run"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "run":
		return runContinuous(ctx, cfg, store)

	case "ingest":
		pipeline, err := newPipeline(cfg, store)
		if err != nil {
			return err
		}
		inserted, err := pipeline.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Inserted %d new posts\n", inserted)
		return nil

	case "recommend":
		generated, err := newSelector(cfg, store).Run(ctx, time.Now().UTC())
		if err != nil {
			return err
		}
		fmt.Printf("Generated %d recommendations\n", generated)
		return nil

	case "recommendations":
		recs, err := store.Recommendations().ListAll(ctx)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			fmt.Printf("%s  %s  %s\n", rec.Date, rec.Title, rec.URL)
		}
		return nil

	case "serve":
		srv := newServer(cfg, store)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return srv.Shutdown(context.Background())

	case "purge":
		urls := flag.Args()[1:]
		if len(urls) == 0 {
			return fmt.Errorf("purge requires at least one url")
		}
		deleted, err := store.Posts().DeleteByURLs(ctx, urls)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d posts\n", deleted)
		return nil

	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runContinuous(ctx context.Context, cfg *config.Config, store storage.StorageInterface) error {
	pipeline, err := newPipeline(cfg, store)
	if err != nil {
		return err
	}

	interval, err := time.ParseDuration(cfg.Runner.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}

	runner := core.NewRunner(core.RunnerConfig{
		Name:     cfg.Runner.Name,
		Pipeline: pipeline,
		Selector: newSelector(cfg, store),
		Interval: interval,
		RunOnce:  cfg.Runner.RunOnce,
	})

	if cfg.Server.Enabled {
		srv := newServer(cfg, store)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = srv.Shutdown(context.Background()) }()
	}

	return runner.Start(ctx)
}

func newPipeline(cfg *config.Config, store storage.StorageInterface) (*ingest.Pipeline, error) {
	srcs, err := sources.Build(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to build sources: %w", err)
	}
	return ingest.NewPipeline(ingest.NewAggregator(srcs), store.Posts()), nil
}

func newSelector(cfg *config.Config, store storage.StorageInterface) *recommend.Selector {
	return recommend.NewSelector(
		store.Posts(),
		store.Recommendations(),
		cfg.Recommend.WindowDays,
		cfg.Recommend.SampleSize,
	)
}

func newServer(cfg *config.Config, store storage.StorageInterface) *server.Server {
	cacheTTL, _ := time.ParseDuration(cfg.Server.CacheTTL)
	return server.New(cfg.Runner.Name, server.Config{
		Port:         cfg.Server.Port,
		CacheTTL:     cacheTTL,
		SinglePerDay: cfg.Recommend.SinglePerDay,
	}, store.Posts(), store.Recommendations())
}
