package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/araddon/dateparse"

	"hustlewire/internal/storage"
	"hustlewire/internal/types"
)

// recentScanLimit bounds how many of the newest posts the selector
// inspects when building the qualifying window. Ingestion batches are tens
// of items, so a few hundred rows cover the window comfortably.
const recentScanLimit = 500

// Selector derives the daily recommendation set: it samples up to
// sampleSize posts published within the trailing windowDays and stores
// them under today's date. The day-level gate makes repeated runs for the
// same day no-ops; overlapping runs fall back to the (title, date)
// uniqueness constraint in the store.
type Selector struct {
	posts      storage.PostStore
	recs       storage.RecommendationStore
	windowDays int
	sampleSize int
}

func NewSelector(posts storage.PostStore, recs storage.RecommendationStore, windowDays, sampleSize int) *Selector {
	if windowDays <= 0 {
		windowDays = 2
	}
	if sampleSize <= 0 {
		sampleSize = 5
	}

	return &Selector{
		posts:      posts,
		recs:       recs,
		windowDays: windowDays,
		sampleSize: sampleSize,
	}
}

// Run generates recommendations for the given day and returns how many
// were stored. Per-row conflicts are skipped; only store unavailability is
// an error.
func (s *Selector) Run(ctx context.Context, today time.Time) (int, error) {
	date := today.Format("2006-01-02")

	count, err := s.recs.CountForDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing recommendations: %w", err)
	}
	if count > 0 {
		slog.Info("recommendations already generated", "date", date)
		return 0, nil
	}

	posts, err := s.posts.ListRecent(ctx, recentScanLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to list recent posts: %w", err)
	}

	recent := s.withinWindow(posts, today)
	if len(recent) == 0 {
		slog.Info("no recent posts to recommend", "date", date)
		return 0, nil
	}

	generated := 0
	for _, post := range s.sample(recent) {
		err := s.recs.Add(ctx, post.Title, post.URL, date)
		switch {
		case err == nil:
			generated++
		case errors.Is(err, types.ErrDuplicate):
			slog.Debug("skipping duplicate recommendation", "title", post.Title, "date", date)
		default:
			slog.Error("failed to add recommendation", "title", post.Title, "error", err)
		}
	}

	slog.Info("generated recommendations", "date", date, "count", generated)
	return generated, nil
}

// withinWindow keeps posts whose timestamp parses and falls on or after
// today minus windowDays. Source timestamps arrive in mixed formats, so
// the comparison happens here rather than in SQL.
func (s *Selector) withinWindow(posts []types.Post, today time.Time) []types.Post {
	cutoff := today.AddDate(0, 0, -s.windowDays)

	recent := make([]types.Post, 0, len(posts))
	for _, post := range posts {
		if post.CreatedUTC == "" {
			continue
		}

		ts, err := dateparse.ParseAny(post.CreatedUTC)
		if err != nil {
			slog.Debug("skipping post with unparseable timestamp", "url", post.URL, "created_utc", post.CreatedUTC)
			continue
		}

		if !ts.Before(cutoff) {
			recent = append(recent, post)
		}
	}
	return recent
}

// sample draws min(len(posts), sampleSize) posts uniformly without
// replacement.
func (s *Selector) sample(posts []types.Post) []types.Post {
	n := s.sampleSize
	if n > len(posts) {
		n = len(posts)
	}

	picked := make([]types.Post, 0, n)
	for _, idx := range rand.Perm(len(posts))[:n] {
		picked = append(picked, posts[idx])
	}
	return picked
}
