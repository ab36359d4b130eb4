package ports

import (
	"context"
	"time"

	"dimcheck/domain/spec"
)

// ItemRecord is the persisted result for one analyzed image.
type ItemRecord struct {
	ID        string                   `db:"id" json:"id"`
	BatchID   string                   `db:"batch_id" json:"batch_id"`
	FileName  string                   `db:"file_name" json:"file_name"`
	Status    spec.Status              `db:"status" json:"status"`
	Skipped   bool                     `db:"skipped" json:"skipped"`
	Error     string                   `db:"error" json:"error,omitempty"`
	Detected  []float64                `json:"detected"`
	Outcomes  []spec.ValidationOutcome `json:"outcomes"`
	CreatedAt time.Time                `db:"created_at" json:"created_at"`
}

// BatchRecord groups the items of one validation run.
type BatchRecord struct {
	ID         string    `db:"id" json:"id"`
	ItemCount  int       `db:"item_count" json:"item_count"`
	SourceName string    `db:"source_name" json:"source_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// OutcomeRepository stores batch history. Persistence is optional; the
// engine and services run fine without one.
type OutcomeRepository interface {
	SaveBatch(ctx context.Context, batch *BatchRecord, items []ItemRecord) error
	GetBatch(ctx context.Context, id string) (*BatchRecord, []ItemRecord, error)
	ListBatches(ctx context.Context, limit int) ([]BatchRecord, error)
}
