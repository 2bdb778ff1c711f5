// Package repository implements the Postgres submission journal using pgx
// directly (no ORM). The journal is best-effort by contract: callers log
// failures and move on, so nothing here is allowed to panic or block longer
// than the statement itself.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightcode-org/outreach/internal/model"
)

// ErrNotFound is returned when a requested journal entry does not exist.
var ErrNotFound = errors.New("not found")

// SubmissionRepository persists the submission journal.
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository constructs a SubmissionRepository.
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Record inserts one journal entry.
func (r *SubmissionRepository) Record(ctx context.Context, entry model.SubmissionLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO submissions (id, kind, workshop_id, submitter_email, summary, degraded, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.Kind, entry.WorkshopID, entry.SubmitterEmail,
		entry.Summary, entry.Degraded, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// GetByID returns a single journal entry or ErrNotFound.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*model.SubmissionLog, error) {
	var e model.SubmissionLog
	err := r.db.QueryRow(ctx,
		`SELECT id, kind, workshop_id, submitter_email, summary, degraded, created_at
		 FROM submissions WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Kind, &e.WorkshopID, &e.SubmitterEmail, &e.Summary, &e.Degraded, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &e, nil
}

// ListByKind returns journal entries of one kind, newest first.
func (r *SubmissionRepository) ListByKind(ctx context.Context, kind string, limit int) ([]model.SubmissionLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, kind, workshop_id, submitter_email, summary, degraded, created_at
		 FROM submissions
		 WHERE kind = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var entries []model.SubmissionLog
	for rows.Next() {
		var e model.SubmissionLog
		if err := rows.Scan(&e.ID, &e.Kind, &e.WorkshopID, &e.SubmitterEmail, &e.Summary, &e.Degraded, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
