package app

import (
	"context"
	"log"
	"time"

	"dimcheck/domain/spec"
	"dimcheck/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchService drives the per-item pipeline: match the file name against the
// reference table, skip the costly extraction call when nothing matches,
// otherwise extract once and validate against every matched entry.
type BatchService struct {
	refs        *ReferenceService
	extractor   ports.DimensionExtractor
	repo        ports.OutcomeRepository // optional
	parallelism int
}

// BatchResult is the in-memory output of one run; the same items are
// persisted through the repository when one is configured.
type BatchResult struct {
	Batch ports.BatchRecord  `json:"batch"`
	Items []ports.ItemRecord `json:"items"`
}

// NewBatchService creates the batch driver. repo may be nil to run without
// persistence; parallelism <= 0 falls back to sequential processing.
func NewBatchService(refs *ReferenceService, extractor ports.DimensionExtractor, repo ports.OutcomeRepository, parallelism int) *BatchService {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &BatchService{refs: refs, extractor: extractor, repo: repo, parallelism: parallelism}
}

// Run processes every item independently and preserves input order in the
// result. One item's extraction failure is recorded on that item only and
// never aborts the batch.
func (s *BatchService) Run(ctx context.Context, items []ports.ExtractionItem) (*BatchResult, error) {
	batchID := uuid.NewString()
	table := s.refs.Snapshot()
	results := make([]ports.ItemRecord, len(items))

	log.Printf("[BatchService] Starting batch %s: %d items, %d reference entries, parallelism=%d",
		batchID, len(items), len(table), s.parallelism)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i := range items {
		i := i
		g.Go(func() error {
			results[i] = s.processItem(gctx, batchID, items[i], table)
			return nil
		})
	}
	// Workers never return errors; item failures live on the records.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := ports.BatchRecord{
		ID:         batchID,
		ItemCount:  len(items),
		SourceName: s.refs.SourceName(),
		CreatedAt:  time.Now().UTC(),
	}
	result := &BatchResult{Batch: batch, Items: results}

	if s.repo != nil {
		if err := s.repo.SaveBatch(ctx, &batch, results); err != nil {
			// History is best-effort; the caller still gets the results.
			log.Printf("[BatchService] WARNING: failed to persist batch %s: %v", batchID, err)
		}
	}
	return result, nil
}

// processItem runs the match-before-extract pipeline for a single image.
func (s *BatchService) processItem(ctx context.Context, batchID string, item ports.ExtractionItem, table []spec.ReferenceEntry) ports.ItemRecord {
	record := ports.ItemRecord{
		ID:        uuid.NewString(),
		BatchID:   batchID,
		FileName:  item.FileName,
		CreatedAt: time.Now().UTC(),
	}

	matches := spec.FindMatches(item.FileName, table)
	if len(matches) == 0 {
		// Cost rule: no reference entry means the extraction call is never
		// issued for this item.
		record.Status = spec.StatusNoMatch
		record.Skipped = true
		record.Outcomes = []spec.ValidationOutcome{spec.NoMatchOutcome()}
		log.Printf("[BatchService] %s: no reference match, extraction skipped", item.FileName)
		return record
	}

	detected, err := s.extractor.ExtractDimensions(ctx, item)
	if err != nil {
		record.Error = err.Error()
		log.Printf("[BatchService] %s: extraction failed: %v", item.FileName, err)
		return record
	}
	record.Detected = detected

	for _, entry := range matches {
		record.Outcomes = append(record.Outcomes, spec.Validate(detected, entry))
	}
	// The headline status follows the most specific (first-ranked) match.
	record.Status = record.Outcomes[0].Status
	return record
}

// CheckFile validates externally supplied measurements for one file name
// against the current table, with no extraction call. Used by the API when
// detected numbers arrive from the client.
func (s *BatchService) CheckFile(fileName string, detected []float64) []spec.ValidationOutcome {
	matches := spec.FindMatches(fileName, s.refs.Snapshot())
	if len(matches) == 0 {
		return []spec.ValidationOutcome{spec.NoMatchOutcome()}
	}
	outcomes := make([]spec.ValidationOutcome, 0, len(matches))
	for _, entry := range matches {
		outcomes = append(outcomes, spec.Validate(detected, entry))
	}
	return outcomes
}
