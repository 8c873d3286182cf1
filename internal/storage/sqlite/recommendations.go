package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hustlewire/internal/storage"
	"hustlewire/internal/types"
)

type recommendationStore struct {
	db *sql.DB
}

func newRecommendationStore(db *sql.DB) storage.RecommendationStore {
	return &recommendationStore{db: db}
}

func (s *recommendationStore) Add(ctx context.Context, title, url, date string) error {
	if strings.TrimSpace(title) == "" {
		return types.NewValidationError("title", "must not be empty")
	}

	query := `
		INSERT INTO recommendations (title, url, date)
		VALUES (?, ?, ?)
		ON CONFLICT(title, date) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query, title, url, date)
	if err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return types.ErrDuplicate
	}

	return nil
}

func (s *recommendationStore) CountForDate(ctx context.Context, date string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recommendations WHERE date = ?`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recommendations: %w", err)
	}
	return count, nil
}

func (s *recommendationStore) ListForDate(ctx context.Context, date string) ([]types.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, url, date FROM recommendations WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	return scanRecommendations(rows)
}

func (s *recommendationStore) ListAll(ctx context.Context) ([]types.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, url, date FROM recommendations ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	return scanRecommendations(rows)
}

func scanRecommendations(rows *sql.Rows) ([]types.Recommendation, error) {
	var recs []types.Recommendation
	for rows.Next() {
		var r types.Recommendation
		var url sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &url, &r.Date); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		r.URL = url.String
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
