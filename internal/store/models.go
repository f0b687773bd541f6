package store

import (
	"time"

	"github.com/uptrace/bun"
)

// ReviewRecord is one persisted PR review run.
type ReviewRecord struct {
	bun.BaseModel `bun:"table:review_records"`

	ID            int64     `bun:"id,pk,autoincrement"`
	Owner         string    `bun:"owner"`
	Repo          string    `bun:"repo"`
	PRNumber      int       `bun:"pr_number"`
	Summary       string    `bun:"summary"`
	QualityScore  int       `bun:"quality_score"`
	Report        string    `bun:"report"`
	ReviewComment string    `bun:"review_comment"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:now()"`
}
