package recommend

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"hustlewire/internal/storage"
	"hustlewire/internal/storage/sqlite"
	"hustlewire/internal/types"
)

func newTestStorage(t *testing.T) storage.StorageInterface {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func seedRecentPosts(t *testing.T, posts storage.PostStore, n int) {
	t.Helper()

	items := make([]types.Item, 0, n)
	stamp := time.Now().UTC().Add(-time.Hour).Format("2006-01-02 15:04:05")
	for i := 0; i < n; i++ {
		items = append(items, types.Item{
			Title:      fmt.Sprintf("Recent %d", i),
			URL:        fmt.Sprintf("http://example.com/recent/%d", i),
			CreatedUTC: stamp,
			Source:     "reddit",
		})
	}

	if _, err := posts.InsertNew(context.Background(), items); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func TestSelectorSamplesAllWhenFewerThanLimit(t *testing.T) {
	store := newTestStorage(t)
	seedRecentPosts(t, store.Posts(), 3)

	selector := NewSelector(store.Posts(), store.Recommendations(), 2, 5)
	today := time.Now().UTC()

	generated, err := selector.Run(context.Background(), today)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if generated != 3 {
		t.Errorf("expected min(3, 5) = 3 generated, got %d", generated)
	}

	rows, err := store.Recommendations().ListForDate(context.Background(), today.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("expected 3 stored rows, got %d", len(rows))
	}
}

func TestSelectorSamplingBound(t *testing.T) {
	store := newTestStorage(t)
	seedRecentPosts(t, store.Posts(), 12)

	selector := NewSelector(store.Posts(), store.Recommendations(), 2, 5)

	generated, err := selector.Run(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if generated != 5 {
		t.Errorf("expected sampling capped at 5, got %d", generated)
	}
}

func TestSelectorDayGate(t *testing.T) {
	store := newTestStorage(t)
	seedRecentPosts(t, store.Posts(), 4)

	selector := NewSelector(store.Posts(), store.Recommendations(), 2, 5)
	today := time.Now().UTC()

	first, err := selector.Run(context.Background(), today)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first == 0 {
		t.Fatal("expected the first run to generate recommendations")
	}

	second, err := selector.Run(context.Background(), today)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second != 0 {
		t.Errorf("expected 0 generated on the same day, got %d", second)
	}
}

func TestSelectorIgnoresPostsOutsideWindow(t *testing.T) {
	store := newTestStorage(t)
	posts := store.Posts()

	recentStamp := time.Now().UTC().Add(-time.Hour).Format("2006-01-02 15:04:05")
	if _, err := posts.InsertNew(context.Background(), []types.Item{
		{Title: "Fresh", URL: "http://example.com/fresh", CreatedUTC: recentStamp, Source: "reddit"},
		{Title: "Stale", URL: "http://example.com/stale", CreatedUTC: "2020-01-01 00:00:00", Source: "medium"},
		{Title: "Garbage timestamp", URL: "http://example.com/garbage", CreatedUTC: "not a date", Source: "medium"},
		{Title: "No timestamp", URL: "http://example.com/none", Source: "medium"},
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	selector := NewSelector(posts, store.Recommendations(), 2, 5)
	today := time.Now().UTC()

	generated, err := selector.Run(context.Background(), today)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if generated != 1 {
		t.Fatalf("expected only the in-window post, got %d", generated)
	}

	rows, err := store.Recommendations().ListForDate(context.Background(), today.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Fresh" {
		t.Errorf("expected only 'Fresh' recommended, got %v", rows)
	}
}

func TestSelectorNoRecentPosts(t *testing.T) {
	store := newTestStorage(t)

	selector := NewSelector(store.Posts(), store.Recommendations(), 2, 5)

	generated, err := selector.Run(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if generated != 0 {
		t.Errorf("expected 0 generated with an empty store, got %d", generated)
	}
}
