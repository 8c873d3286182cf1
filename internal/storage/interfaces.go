package storage

import (
	"context"
	"database/sql"

	"hustlewire/internal/types"
)

type StorageInterface interface {
	GetConnection() *sql.DB
	Posts() PostStore
	Recommendations() RecommendationStore
	Close(ctx context.Context) error
}

// QueryOptions selects a page of posts. Search matches title or source as
// a case-insensitive substring; Source is an exact case-insensitive match.
type QueryOptions struct {
	Page   int
	Limit  int
	Search string
	Source string
}

type PostStore interface {
	// ExistingURLs is a point-in-time snapshot of every persisted url.
	ExistingURLs(ctx context.Context) (map[string]struct{}, error)

	// InsertNew persists the given items one by one, skipping rows whose
	// url already exists, and returns the count actually inserted. A
	// store-level failure returns the partial count alongside the error.
	InsertNew(ctx context.Context, items []types.Item) (int, error)

	// Query returns one page of posts plus the total matching count,
	// ordered by created_utc descending with id as tiebreaker.
	Query(ctx context.Context, opts QueryOptions) ([]types.Post, int, error)

	// ListRecent returns the newest rows by insertion order.
	ListRecent(ctx context.Context, limit int) ([]types.Post, error)

	// LatestCreatedUTC returns the maximum created_utc across all posts,
	// or the empty string when the table is empty.
	LatestCreatedUTC(ctx context.Context) (string, error)

	// DeleteByURLs removes posts matching the given urls and reports how
	// many rows were deleted.
	DeleteByURLs(ctx context.Context, urls []string) (int64, error)
}

type RecommendationStore interface {
	// Add persists one recommendation. An empty title is a validation
	// error; an existing (title, date) pair returns types.ErrDuplicate.
	Add(ctx context.Context, title, url, date string) error

	CountForDate(ctx context.Context, date string) (int, error)
	ListForDate(ctx context.Context, date string) ([]types.Recommendation, error)
	ListAll(ctx context.Context) ([]types.Recommendation, error)
}
