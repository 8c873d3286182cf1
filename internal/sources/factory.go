package sources

import (
	"fmt"
	"sort"

	"hustlewire/internal/config"
	"hustlewire/internal/types"
)

// Build constructs the enabled adapters from config in name-sorted order,
// so every ingestion run visits sources in the same sequence.
func Build(cfgs map[string]config.SourceConfig) ([]types.Source, error) {
	names := make([]string, 0, len(cfgs))
	for name, cfg := range cfgs {
		if cfg.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	srcs := make([]types.Source, 0, len(names))
	for _, name := range names {
		cfg := cfgs[name]
		displayName := config.GetString(cfg.Settings, "name", name)
		limit := config.GetInt(cfg.Settings, "limit", 0)

		switch cfg.Type {
		case "reddit":
			srcs = append(srcs, NewRedditSource(
				displayName,
				config.GetString(cfg.Settings, "url", ""),
				limit,
			))
		case "devto":
			srcs = append(srcs, NewDevtoSource(
				displayName,
				config.GetString(cfg.Settings, "url", ""),
				config.GetString(cfg.Settings, "tag", ""),
				limit,
			))
		case "hackernews":
			srcs = append(srcs, NewHackerNewsSource(
				displayName,
				config.GetString(cfg.Settings, "url", ""),
				config.GetString(cfg.Settings, "story_type", ""),
				limit,
			))
		case "remoteok":
			srcs = append(srcs, NewRemoteOKSource(
				displayName,
				config.GetString(cfg.Settings, "url", ""),
				limit,
			))
		case "rss":
			feedURL := config.GetString(cfg.Settings, "feed_url", "")
			if feedURL == "" {
				return nil, fmt.Errorf("source %s: rss source requires feed_url", name)
			}
			srcs = append(srcs, NewRSSSource(displayName, feedURL, limit))
		default:
			return nil, fmt.Errorf("source %s: unknown source type: %s", name, cfg.Type)
		}
	}

	return srcs, nil
}
