// Package store persists review history in Postgres. It is optional: the CLI
// only wires it when a DSN is configured.
package store

import (
	"context"
	"time"
)

type ReviewRepository struct {
	db *Database
}

func NewReviewRepository(database *Database) *ReviewRepository {
	return &ReviewRepository{db: database}
}

// Bootstrap creates the review_records table when missing.
func (r *ReviewRepository) Bootstrap(ctx context.Context) error {
	_, err := r.db.Bun().NewCreateTable().
		Model((*ReviewRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Save stores one completed review run.
func (r *ReviewRepository) Save(ctx context.Context, record *ReviewRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Bun().NewInsert().Model(record).Exec(ctx)
	return err
}

// Recent returns the newest review runs, most recent first.
func (r *ReviewRepository) Recent(ctx context.Context, limit int) ([]ReviewRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var records []ReviewRecord
	err := r.db.Bun().NewSelect().
		Model(&records).
		OrderExpr("created_at DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}
