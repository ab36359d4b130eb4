// Package testkit supplies spreadsheet fixtures and collaborator doubles for
// service and adapter tests.
package testkit

import (
	"context"
	"fmt"
	"sync"

	"dimcheck/domain/spec"
	"dimcheck/ports"
)

// SheetFixture is an in-memory SheetSource.
type SheetFixture struct {
	Data *ports.SheetData
	Err  error
}

func (f *SheetFixture) ReadSheet() (*ports.SheetData, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Data, nil
}

// FurnitureSheet returns a small reference sheet with the usual metadata
// columns plus three dimension columns.
func FurnitureSheet() *SheetFixture {
	headers := []string{"Product Name", "SKU", "Size", "Width", "Depth", "Height"}
	rows := []spec.Row{
		{
			"Product Name": "Mardi Marble Side Table",
			"SKU":          "SKU-20240501",
			"Size":         `24" x 12" x 30"`,
			"Width":        "24", "Depth": "12", "Height": "30",
		},
		{
			"Product Name": "Side Table",
			"SKU":          "SKU-2",
			"Width":        "18.5", "Depth": "18.5", "Height": "22",
		},
		{
			"Product Name": "Oak Stool",
			"SKU":          "SKU-3",
			"Width":        "14", "Depth": "14", "Height": "18",
		},
	}
	return &SheetFixture{Data: &ports.SheetData{Headers: headers, Rows: rows}}
}

// StubExtractor is a DimensionExtractor double that records which items were
// extracted, so tests can assert the skip-on-no-match cost rule.
type StubExtractor struct {
	mu    sync.Mutex
	Dims  map[string][]float64 // keyed by file name
	Err   error
	calls []string
}

func (s *StubExtractor) ExtractDimensions(_ context.Context, item ports.ExtractionItem) ([]float64, error) {
	s.mu.Lock()
	s.calls = append(s.calls, item.FileName)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	dims, ok := s.Dims[item.FileName]
	if !ok {
		return nil, fmt.Errorf("no stubbed dimensions for %s", item.FileName)
	}
	return dims, nil
}

// Calls returns the file names extraction was invoked for.
func (s *StubExtractor) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// MemoryRepository is an in-memory OutcomeRepository.
type MemoryRepository struct {
	mu      sync.Mutex
	Batches map[string]*ports.BatchRecord
	Items   map[string][]ports.ItemRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		Batches: make(map[string]*ports.BatchRecord),
		Items:   make(map[string][]ports.ItemRecord),
	}
}

func (m *MemoryRepository) SaveBatch(_ context.Context, batch *ports.BatchRecord, items []ports.ItemRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := *batch
	m.Batches[batch.ID] = &b
	m.Items[batch.ID] = append([]ports.ItemRecord(nil), items...)
	return nil
}

func (m *MemoryRepository) GetBatch(_ context.Context, id string) (*ports.BatchRecord, []ports.ItemRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	batch, ok := m.Batches[id]
	if !ok {
		return nil, nil, fmt.Errorf("batch %s not found", id)
	}
	return batch, m.Items[id], nil
}

func (m *MemoryRepository) ListBatches(_ context.Context, limit int) ([]ports.BatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.BatchRecord
	for _, b := range m.Batches {
		out = append(out, *b)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
