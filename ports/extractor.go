package ports

import "context"

// ExtractionItem identifies one image to run dimension extraction on.
// Exactly one of ImagePath or ImageURL should be set; FileName is what the
// matcher runs against and may differ from the path base.
type ExtractionItem struct {
	FileName  string `json:"file_name"`
	ImagePath string `json:"image_path,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// DimensionExtractor is the costly external vision call. Callers must run
// the matcher first and skip extraction entirely for items with zero
// reference candidates.
type DimensionExtractor interface {
	ExtractDimensions(ctx context.Context, item ExtractionItem) ([]float64, error)
}
