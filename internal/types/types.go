package types

import (
	"context"
)

// Item is a normalized candidate record produced by a source adapter,
// before persistence. URL is the business key; an item without a URL is
// not eligible for persistence and adapters drop it.
type Item struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	CreatedUTC string `json:"created_utc"`
	Source     string `json:"source"`
}

// Post is a persisted item. ID is assigned by the store; URL is unique
// across all posts.
type Post struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	CreatedUTC string `json:"created_utc"`
	Source     string `json:"source"`
}

// Recommendation is one daily pick. Date is the calendar day the pick was
// generated for, formatted YYYY-MM-DD. (Title, Date) pairs are unique.
type Recommendation struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
}

// Source produces up to its configured number of normalized items from one
// external origin. Implementations own their HTTP client and timeout.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Item, error)
}
