package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

// SaveSuggestion saves or updates a suggestion.
func (r *Repository) SaveSuggestion(ctx context.Context, suggestion *entities.Suggestion) error {
	query := `
		INSERT INTO suggestions (id, tree_id, rule_id, kind, source_id, target_id, confidence, explanation, status, created_at, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			reviewed_at = excluded.reviewed_at
	`
	_, err := r.db.ExecContext(ctx, query,
		suggestion.ID,
		suggestion.TreeID,
		suggestion.RuleID,
		string(suggestion.Kind),
		suggestion.SourceID,
		suggestion.TargetID,
		suggestion.Confidence,
		suggestion.Explanation,
		string(suggestion.Status),
		suggestion.CreatedAt,
		nullTime(suggestion.ReviewedAt),
	)
	if err != nil {
		return fmt.Errorf("saving suggestion: %w", err)
	}
	return nil
}

// FindSuggestionByID finds a suggestion by ID.
func (r *Repository) FindSuggestionByID(ctx context.Context, id string) (*entities.Suggestion, error) {
	query := `
		SELECT id, tree_id, rule_id, kind, source_id, target_id, confidence, explanation, status, created_at, reviewed_at
		FROM suggestions
		WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)

	suggestion, err := scanSuggestion(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning suggestion: %w", err)
	}
	return suggestion, nil
}

// ListSuggestions lists suggestions for a tree, optionally filtered by
// status, ordered by confidence descending.
func (r *Repository) ListSuggestions(ctx context.Context, treeID string, status entities.SuggestionStatus) ([]entities.Suggestion, error) {
	query := `
		SELECT id, tree_id, rule_id, kind, source_id, target_id, confidence, explanation, status, created_at, reviewed_at
		FROM suggestions
		WHERE tree_id = ?
	`
	args := []any{treeID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY confidence DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying suggestions: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Suggestion, 0)
	for rows.Next() {
		suggestion, err := scanSuggestion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning suggestion: %w", err)
		}
		result = append(result, *suggestion)
	}
	return result, rows.Err()
}

// UpdateSuggestionStatus sets the review status of a suggestion.
func (r *Repository) UpdateSuggestionStatus(ctx context.Context, id string, status entities.SuggestionStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE suggestions SET status = ?, reviewed_at = ? WHERE id = ?`,
		string(status), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("updating suggestion status: %w", err)
	}
	return nil
}

func scanSuggestion(scan func(dest ...any) error) (*entities.Suggestion, error) {
	var suggestion entities.Suggestion
	var kind, status string
	var reviewedAt sql.NullTime
	err := scan(
		&suggestion.ID,
		&suggestion.TreeID,
		&suggestion.RuleID,
		&kind,
		&suggestion.SourceID,
		&suggestion.TargetID,
		&suggestion.Confidence,
		&suggestion.Explanation,
		&status,
		&suggestion.CreatedAt,
		&reviewedAt,
	)
	if err != nil {
		return nil, err
	}
	suggestion.Kind = entities.PredictedKind(kind)
	suggestion.Status = entities.SuggestionStatus(status)
	suggestion.ReviewedAt = timePtr(reviewedAt)
	return &suggestion, nil
}
