package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"hustlewire/internal/storage"
	"hustlewire/internal/types"
)

type postStore struct {
	db *sql.DB
}

func newPostStore(db *sql.DB) storage.PostStore {
	return &postStore{db: db}
}

func (s *postStore) ExistingURLs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("failed to list urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		urls[url] = struct{}{}
	}

	return urls, rows.Err()
}

func (s *postStore) InsertNew(ctx context.Context, items []types.Item) (int, error) {
	query := `
		INSERT INTO posts (title, url, created_utc, source)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO NOTHING
	`

	inserted := 0
	for _, item := range items {
		if item.URL == "" {
			slog.Debug("skipping item without url", "title", item.Title, "source", item.Source)
			continue
		}

		result, err := s.db.ExecContext(ctx, query, item.Title, item.URL, item.CreatedUTC, item.Source)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert post: %w", err)
		}

		if n, err := result.RowsAffected(); err == nil && n > 0 {
			inserted++
		}
	}

	return inserted, nil
}

func (s *postStore) Query(ctx context.Context, opts storage.QueryOptions) ([]types.Post, int, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	var conditions []string
	var args []interface{}

	if opts.Search != "" {
		needle := "%" + strings.ToLower(opts.Search) + "%"
		conditions = append(conditions, `(LOWER(title) LIKE ? OR LOWER(source) LIKE ?)`)
		args = append(args, needle, needle)
	}

	if opts.Source != "" {
		conditions = append(conditions, `LOWER(source) = ?`)
		args = append(args, strings.ToLower(opts.Source))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := `SELECT id, title, url, created_utc, source FROM posts` + where +
		` ORDER BY created_utc DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (s *postStore) ListRecent(ctx context.Context, limit int) ([]types.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, url, created_utc, source FROM posts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (s *postStore) LatestCreatedUTC(ctx context.Context) (string, error) {
	var latest sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT MAX(created_utc) FROM posts`).Scan(&latest)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest post time: %w", err)
	}
	return latest.String, nil
}

func (s *postStore) DeleteByURLs(ctx context.Context, urls []string) (int64, error) {
	if len(urls) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(urls))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, len(urls))
	for i, url := range urls {
		args[i] = url
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM posts WHERE url IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	slog.Debug("deleted posts by url", "count", deleted)
	return deleted, nil
}

func scanPosts(rows *sql.Rows) ([]types.Post, error) {
	var posts []types.Post
	for rows.Next() {
		var p types.Post
		var createdUTC, source sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.URL, &createdUTC, &source); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		p.CreatedUTC = createdUTC.String
		p.Source = source.String
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
