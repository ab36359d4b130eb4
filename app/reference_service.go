package app

import (
	"log"
	"sync"
	"sync/atomic"

	"dimcheck/domain/spec"
	"dimcheck/internal/errors"
	"dimcheck/ports"
)

// ReferenceService owns the reference table as an immutable snapshot that is
// replaced atomically on every load or reconfiguration. Readers always see a
// complete table; there is no incremental update.
type ReferenceService struct {
	table atomic.Pointer[[]spec.ReferenceEntry]

	mu     sync.Mutex // guards raw + rng across reloads
	raw    *ports.SheetData
	rng    *spec.ColumnRange
	source string
}

// NewReferenceService starts with an empty table; every match against it
// reports no candidates until a sheet is loaded.
func NewReferenceService() *ReferenceService {
	s := &ReferenceService{}
	empty := []spec.ReferenceEntry{}
	s.table.Store(&empty)
	return s
}

// LoadFrom reads the sheet and rebuilds the table wholesale. The raw rows
// are retained so a later column-range change can rebuild without re-reading
// the file.
func (s *ReferenceService) LoadFrom(source ports.SheetSource, sourceName string, rng *spec.ColumnRange) error {
	data, err := source.ReadSheet()
	if err != nil {
		return errors.SheetError("failed to read reference sheet", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = data
	s.rng = rng
	s.source = sourceName
	s.rebuildLocked()
	return nil
}

// Reconfigure rebuilds the table from the retained raw rows under a new
// column range. No-op error when nothing was ever loaded.
func (s *ReferenceService) Reconfigure(rng *spec.ColumnRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return errors.NotFound("reference sheet")
	}
	s.rng = rng
	s.rebuildLocked()
	return nil
}

func (s *ReferenceService) rebuildLocked() {
	table := spec.BuildSpecTable(s.raw.Rows, s.raw.Headers, s.rng)
	s.table.Store(&table)
	log.Printf("[ReferenceService] Rebuilt table from %q: %d entries (%d raw rows)",
		s.source, len(table), len(s.raw.Rows))
}

// Snapshot returns the current table. The returned slice must be treated as
// read-only; it is shared by every concurrent reader.
func (s *ReferenceService) Snapshot() []spec.ReferenceEntry {
	return *s.table.Load()
}

// SourceName reports which sheet the current table came from.
func (s *ReferenceService) SourceName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}
