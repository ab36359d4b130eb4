package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"dimcheck/adapters/excel"
	"dimcheck/adapters/report"
	"dimcheck/domain/spec"
	"dimcheck/internal/errors"
	"dimcheck/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxUploadBytes = 32 << 20

// handleUploadReference accepts a multipart spreadsheet upload plus an
// optional column range and swaps in the rebuilt reference table.
func (s *Server) handleUploadReference(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, errors.InvalidInput("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.InvalidInput("missing file field"))
		return
	}
	defer file.Close()

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("dimcheck-%s-%s", middleware.GetReqID(r.Context()), filepath.Base(header.Filename)))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	tmp.Close()

	rng := rangeFromForm(r.FormValue("start_column"), r.FormValue("end_column"))
	if err := s.refs.LoadFrom(excel.NewSheetReader(tmpPath), header.Filename, rng); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"source":  header.Filename,
		"entries": len(s.refs.Snapshot()),
	})
}

func (s *Server) handleListReference(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"source":  s.refs.SourceName(),
		"entries": s.refs.Snapshot(),
	})
}

// handleReconfigureColumns rebuilds the table under a new column range
// without re-uploading the sheet.
func (s *Server) handleReconfigureColumns(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartColumn string `json:"start_column"`
		EndColumn   string `json:"end_column"`
	}
	if err := decodeJSONBody(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.refs.Reconfigure(rangeFromForm(body.StartColumn, body.EndColumn)); err != nil {
		respondError(w, http.StatusConflict, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"entries": len(s.refs.Snapshot())})
}

// handleValidate reconciles client-supplied detected numbers against the
// table. No extraction call is involved.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileName string    `json:"file_name"`
		Detected []float64 `json:"detected"`
	}
	if err := decodeJSONBody(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if body.FileName == "" {
		respondError(w, http.StatusBadRequest, errors.InvalidInput("file_name is required"))
		return
	}

	outcomes := s.batches.CheckFile(body.FileName, body.Detected)
	respondJSON(w, http.StatusOK, map[string]any{
		"file_name": body.FileName,
		"outcomes":  outcomes,
	})
}

// handleRunBatch runs the full match -> extract -> validate pipeline over
// the posted items.
func (s *Server) handleRunBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []ports.ExtractionItem `json:"items"`
	}
	if err := decodeJSONBody(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if len(body.Items) == 0 {
		respondError(w, http.StatusBadRequest, errors.InvalidInput("items is required"))
		return
	}

	result, err := s.batches.Run(r.Context(), body.Items)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		respondError(w, http.StatusNotImplemented, errors.New(errors.CodeNotFound, "batch history is not configured"))
		return
	}
	batches, err := s.repo.ListBatches(r.Context(), 50)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"batches": batches})
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batch, items, ok := s.loadBatch(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"batch":   batch,
		"items":   items,
		"summary": report.Summarize(items),
	})
}

func (s *Server) handleBatchReport(w http.ResponseWriter, r *http.Request) {
	batch, items, ok := s.loadBatch(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.RenderHTML(batch, items))
}

func (s *Server) handleBatchExport(w http.ResponseWriter, r *http.Request) {
	batch, items, ok := s.loadBatch(w, r)
	if !ok {
		return
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("dimcheck-report-%s.xlsx", batch.ID))
	defer os.Remove(path)
	if err := report.WriteWorkbook(path, batch, items); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="qc-%s.xlsx"`, batch.ID))
	http.ServeFile(w, r, path)
}

func (s *Server) loadBatch(w http.ResponseWriter, r *http.Request) (*ports.BatchRecord, []ports.ItemRecord, bool) {
	if s.repo == nil {
		respondError(w, http.StatusNotImplemented, errors.New(errors.CodeNotFound, "batch history is not configured"))
		return nil, nil, false
	}
	id := chi.URLParam(r, "id")
	batch, items, err := s.repo.GetBatch(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, errors.NotFound("batch"))
		return nil, nil, false
	}
	return batch, items, true
}

func rangeFromForm(start, end string) *spec.ColumnRange {
	if start == "" && end == "" {
		return nil
	}
	return &spec.ColumnRange{Start: start, End: end}
}
