package report

import (
	"fmt"
	"strings"

	"dimcheck/domain/spec"
	"dimcheck/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Summary aggregates one batch into QC headline numbers: how many items
// landed in each status bucket and how noisy the matched measurements were.
type Summary struct {
	TotalItems    int                 `json:"total_items"`
	Skipped       int                 `json:"skipped"`
	Failed        int                 `json:"failed"`
	StatusCounts  map[spec.Status]int `json:"status_counts"`
	MeanDeviation float64             `json:"mean_deviation"`
	MaxDeviation  float64             `json:"max_deviation"`
	P95Deviation  float64             `json:"p95_deviation"`
}

// Summarize computes batch-level statistics over every matched pair in the
// item set. Deviation stats are zero when nothing matched.
func Summarize(items []ports.ItemRecord) Summary {
	s := Summary{
		TotalItems:   len(items),
		StatusCounts: make(map[spec.Status]int),
	}

	var diffs []float64
	for _, item := range items {
		if item.Skipped {
			s.Skipped++
		}
		if item.Error != "" {
			s.Failed++
			continue
		}
		for _, out := range item.Outcomes {
			s.StatusCounts[out.Status]++
			for _, pair := range out.MatchedPairs {
				diffs = append(diffs, pair.Diff)
			}
		}
	}

	if len(diffs) > 0 {
		s.MeanDeviation = floats.Sum(diffs) / float64(len(diffs))
		s.MaxDeviation = floats.Max(diffs)
		if p95, err := stats.Percentile(diffs, 95); err == nil {
			s.P95Deviation = p95
		}
	}
	return s
}

// RenderMarkdown formats a batch summary plus its per-item lines as a
// markdown report.
func RenderMarkdown(batch *ports.BatchRecord, items []ports.ItemRecord) string {
	s := Summarize(items)

	var b strings.Builder
	fmt.Fprintf(&b, "# Dimension QC Report\n\n")
	fmt.Fprintf(&b, "Batch `%s` — %d items, %d skipped (no reference match), %d failed.\n\n",
		batch.ID, s.TotalItems, s.Skipped, s.Failed)

	fmt.Fprintf(&b, "## Status counts\n\n")
	for _, status := range []spec.Status{spec.StatusPerfect, spec.StatusMissing, spec.StatusExtra, spec.StatusMismatch, spec.StatusNoMatch} {
		if n := s.StatusCounts[status]; n > 0 {
			fmt.Fprintf(&b, "- **%s**: %d\n", status, n)
		}
	}

	fmt.Fprintf(&b, "\n## Measurement noise\n\n")
	fmt.Fprintf(&b, "- mean deviation: %.3f\n- max deviation: %.3f\n- p95 deviation: %.3f\n",
		s.MeanDeviation, s.MaxDeviation, s.P95Deviation)

	fmt.Fprintf(&b, "\n## Items\n\n")
	fmt.Fprintf(&b, "| File | Status | Product | Detail |\n|---|---|---|---|\n")
	for _, item := range items {
		product, detail := itemDetail(item)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", item.FileName, item.Status, product, detail)
	}
	return b.String()
}

// RenderHTML converts the markdown report to HTML for the web UI.
func RenderHTML(batch *ports.BatchRecord, items []ports.ItemRecord) []byte {
	md := RenderMarkdown(batch, items)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func itemDetail(item ports.ItemRecord) (product, detail string) {
	if item.Error != "" {
		return "", "failed: " + item.Error
	}
	if item.Skipped {
		return "", "no reference entry, extraction skipped"
	}
	if len(item.Outcomes) == 0 {
		return "", ""
	}

	first := item.Outcomes[0]
	if first.MatchedEntry != nil {
		product = first.MatchedEntry.ProductName
	}
	parts := make([]string, 0, 2)
	if len(first.UnmatchedExpected) > 0 {
		parts = append(parts, fmt.Sprintf("missing %v", first.UnmatchedExpected))
	}
	if len(first.UnmatchedDetected) > 0 {
		parts = append(parts, fmt.Sprintf("extra %v", first.UnmatchedDetected))
	}
	return product, strings.Join(parts, "; ")
}
