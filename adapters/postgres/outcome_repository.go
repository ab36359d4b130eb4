package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"dimcheck/domain/spec"
	"dimcheck/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS qc_batches (
	id          UUID PRIMARY KEY,
	item_count  INTEGER NOT NULL,
	source_name TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS qc_items (
	id         UUID PRIMARY KEY,
	batch_id   UUID NOT NULL REFERENCES qc_batches(id) ON DELETE CASCADE,
	file_name  TEXT NOT NULL,
	status     TEXT NOT NULL,
	skipped    BOOLEAN NOT NULL DEFAULT FALSE,
	error      TEXT NOT NULL DEFAULT '',
	detected   JSONB NOT NULL DEFAULT '[]',
	outcomes   JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_qc_items_batch ON qc_items(batch_id);
`

// OutcomeRepository stores validation batch history in Postgres.
type OutcomeRepository struct {
	db *sqlx.DB
}

// NewOutcomeRepository connects and ensures the schema exists.
func NewOutcomeRepository(databaseURL string) (*OutcomeRepository, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	log.Printf("[OutcomeRepository] Connected, schema ensured")
	return &OutcomeRepository{db: db}, nil
}

// Close releases the underlying connection pool.
func (r *OutcomeRepository) Close() error {
	return r.db.Close()
}

// itemRow is the persisted shape of a ports.ItemRecord.
type itemRow struct {
	ID        string    `db:"id"`
	BatchID   string    `db:"batch_id"`
	FileName  string    `db:"file_name"`
	Status    string    `db:"status"`
	Skipped   bool      `db:"skipped"`
	Error     string    `db:"error"`
	Detected  string    `db:"detected"`
	Outcomes  string    `db:"outcomes"`
	CreatedAt time.Time `db:"created_at"`
}

// SaveBatch persists the batch and all of its items in one transaction.
func (r *OutcomeRepository) SaveBatch(ctx context.Context, batch *ports.BatchRecord, items []ports.ItemRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO qc_batches (id, item_count, source_name, created_at)
		VALUES (:id, :item_count, :source_name, :created_at)`, batch); err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	for i := range items {
		row, err := toItemRow(&items[i])
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO qc_items (id, batch_id, file_name, status, skipped, error, detected, outcomes, created_at)
			VALUES (:id, :batch_id, :file_name, :status, :skipped, :error, :detected, :outcomes, :created_at)`, row); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", items[i].FileName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	log.Printf("[OutcomeRepository] Saved batch %s (%d items)", batch.ID, len(items))
	return nil
}

// GetBatch loads one batch and its items, item insertion order preserved.
func (r *OutcomeRepository) GetBatch(ctx context.Context, id string) (*ports.BatchRecord, []ports.ItemRecord, error) {
	var batch ports.BatchRecord
	if err := r.db.GetContext(ctx, &batch, `
		SELECT id, item_count, source_name, created_at FROM qc_batches WHERE id = $1`, id); err != nil {
		return nil, nil, fmt.Errorf("batch %s not found: %w", id, err)
	}

	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, batch_id, file_name, status, skipped, error, detected, outcomes, created_at
		FROM qc_items WHERE batch_id = $1 ORDER BY created_at, id`, id); err != nil {
		return nil, nil, fmt.Errorf("failed to load items for batch %s: %w", id, err)
	}

	items := make([]ports.ItemRecord, 0, len(rows))
	for i := range rows {
		item, err := fromItemRow(&rows[i])
		if err != nil {
			return nil, nil, err
		}
		items = append(items, *item)
	}
	return &batch, items, nil
}

// ListBatches returns the most recent batches, newest first.
func (r *OutcomeRepository) ListBatches(ctx context.Context, limit int) ([]ports.BatchRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var batches []ports.BatchRecord
	if err := r.db.SelectContext(ctx, &batches, `
		SELECT id, item_count, source_name, created_at
		FROM qc_batches ORDER BY created_at DESC LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

func toItemRow(item *ports.ItemRecord) (*itemRow, error) {
	detected, err := json.Marshal(item.Detected)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal detected values: %w", err)
	}
	outcomes, err := json.Marshal(item.Outcomes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outcomes: %w", err)
	}
	return &itemRow{
		ID:        item.ID,
		BatchID:   item.BatchID,
		FileName:  item.FileName,
		Status:    string(item.Status),
		Skipped:   item.Skipped,
		Error:     item.Error,
		Detected:  string(detected),
		Outcomes:  string(outcomes),
		CreatedAt: item.CreatedAt,
	}, nil
}

func fromItemRow(row *itemRow) (*ports.ItemRecord, error) {
	item := &ports.ItemRecord{
		ID:        row.ID,
		BatchID:   row.BatchID,
		FileName:  row.FileName,
		Status:    spec.Status(row.Status),
		Skipped:   row.Skipped,
		Error:     row.Error,
		CreatedAt: row.CreatedAt,
	}
	if row.Detected != "" {
		if err := json.Unmarshal([]byte(row.Detected), &item.Detected); err != nil {
			return nil, fmt.Errorf("failed to unmarshal detected values: %w", err)
		}
	}
	if row.Outcomes != "" {
		if err := json.Unmarshal([]byte(row.Outcomes), &item.Outcomes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outcomes: %w", err)
		}
	}
	return item, nil
}
