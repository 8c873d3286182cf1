package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"hustlewire/internal/storage"
	"hustlewire/internal/types"
)

func newTestStorage(t *testing.T) storage.StorageInterface {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func TestInsertNewSkipsConflicts(t *testing.T) {
	posts := newTestStorage(t).Posts()
	ctx := context.Background()

	items := []types.Item{
		{Title: "A", URL: "a", CreatedUTC: "2024-01-01 10:00:00", Source: "reddit"},
		{Title: "B", URL: "b", CreatedUTC: "2024-01-02 10:00:00", Source: "medium"},
		{Title: "A again", URL: "a", CreatedUTC: "2024-01-03 10:00:00", Source: "dev.to"},
	}

	inserted, err := posts.InsertNew(ctx, items)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if inserted != 2 {
		t.Errorf("expected 2 inserted with batch-internal collision skipped, got %d", inserted)
	}

	urls, err := posts.ExistingURLs(ctx)
	if err != nil {
		t.Fatalf("existing urls failed: %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("expected 2 distinct urls, got %d", len(urls))
	}

	// Re-running the identical batch inserts nothing.
	inserted, err = posts.InsertNew(ctx, items)
	if err != nil {
		t.Fatalf("second insert failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected idempotent re-insert, got %d", inserted)
	}
}

func TestInsertNewDropsEmptyURL(t *testing.T) {
	posts := newTestStorage(t).Posts()

	inserted, err := posts.InsertNew(context.Background(), []types.Item{
		{Title: "no url"},
		{Title: "ok", URL: "x"},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if inserted != 1 {
		t.Errorf("expected url-less item dropped, got %d inserted", inserted)
	}
}

func seedPosts(t *testing.T, posts storage.PostStore) {
	t.Helper()
	_, err := posts.InsertNew(context.Background(), []types.Item{
		{Title: "Freelance writing tips", URL: "u1", CreatedUTC: "2024-03-01 08:00:00", Source: "reddit"},
		{Title: "Passive income apps", URL: "u2", CreatedUTC: "2024-03-02 08:00:00", Source: "medium"},
		{Title: "Remote design job", URL: "u3", CreatedUTC: "2024-03-03 08:00:00", Source: "remote ok"},
		{Title: "Side project ideas", URL: "u4", CreatedUTC: "2024-03-04 08:00:00", Source: "reddit"},
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func TestQueryOrderingAndPagination(t *testing.T) {
	posts := newTestStorage(t).Posts()
	seedPosts(t, posts)
	ctx := context.Background()

	page, total, err := posts.Query(ctx, storage.QueryOptions{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if total != 4 {
		t.Errorf("expected total 4, got %d", total)
	}
	if len(page) != 2 || page[0].URL != "u4" || page[1].URL != "u3" {
		t.Errorf("expected newest-first page [u4 u3], got %v", page)
	}

	page, _, err = posts.Query(ctx, storage.QueryOptions{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(page) != 2 || page[0].URL != "u2" || page[1].URL != "u1" {
		t.Errorf("expected second page [u2 u1], got %v", page)
	}
}

func TestQuerySearchMatchesTitleOrSource(t *testing.T) {
	posts := newTestStorage(t).Posts()
	seedPosts(t, posts)
	ctx := context.Background()

	_, total, err := posts.Query(ctx, storage.QueryOptions{Page: 1, Limit: 10, Search: "INCOME"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 title match, got %d", total)
	}

	_, total, err = posts.Query(ctx, storage.QueryOptions{Page: 1, Limit: 10, Search: "reddit"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 source matches, got %d", total)
	}
}

func TestQuerySourceFilter(t *testing.T) {
	posts := newTestStorage(t).Posts()
	seedPosts(t, posts)

	page, total, err := posts.Query(context.Background(), storage.QueryOptions{Page: 1, Limit: 10, Source: "Reddit"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if total != 2 || len(page) != 2 {
		t.Errorf("expected 2 reddit posts, got total=%d len=%d", total, len(page))
	}
	for _, p := range page {
		if p.Source != "reddit" {
			t.Errorf("unexpected source in filtered page: %s", p.Source)
		}
	}
}

func TestLatestCreatedUTC(t *testing.T) {
	posts := newTestStorage(t).Posts()
	ctx := context.Background()

	latest, err := posts.LatestCreatedUTC(ctx)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest != "" {
		t.Errorf("expected empty string for empty table, got %q", latest)
	}

	seedPosts(t, posts)

	latest, err = posts.LatestCreatedUTC(ctx)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest != "2024-03-04 08:00:00" {
		t.Errorf("unexpected latest time: %q", latest)
	}
}

func TestDeleteByURLs(t *testing.T) {
	posts := newTestStorage(t).Posts()
	seedPosts(t, posts)
	ctx := context.Background()

	deleted, err := posts.DeleteByURLs(ctx, []string{"u1", "u3", "missing"})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}

	urls, err := posts.ExistingURLs(ctx)
	if err != nil {
		t.Fatalf("existing urls failed: %v", err)
	}
	if _, gone := urls["u1"]; gone {
		t.Error("u1 should have been deleted")
	}
	if len(urls) != 2 {
		t.Errorf("expected 2 remaining urls, got %d", len(urls))
	}

	if deleted, err := posts.DeleteByURLs(ctx, nil); err != nil || deleted != 0 {
		t.Errorf("expected no-op for empty url list, got deleted=%d err=%v", deleted, err)
	}
}
