package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dimcheck/app"
	"dimcheck/internal/errors"
	"dimcheck/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the reference table and validation pipeline over HTTP.
type Server struct {
	refs    *app.ReferenceService
	batches *app.BatchService
	repo    ports.OutcomeRepository // optional, nil disables history endpoints
	router  chi.Router
}

// NewServer wires the routes.
func NewServer(refs *app.ReferenceService, batches *app.BatchService, repo ports.OutcomeRepository) *Server {
	s := &Server{refs: refs, batches: batches, repo: repo}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Route("/api", func(r chi.Router) {
		r.Post("/reference", s.handleUploadReference)
		r.Get("/reference", s.handleListReference)
		r.Put("/reference/columns", s.handleReconfigureColumns)
		r.Post("/validate", s.handleValidate)
		r.Post("/batch", s.handleRunBatch)
		r.Get("/batch", s.handleListBatches)
		r.Get("/batch/{id}", s.handleGetBatch)
		r.Get("/batch/{id}/report", s.handleBatchReport)
		r.Get("/batch/{id}/export", s.handleBatchExport)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.router = r
	return s
}

// Handler returns the root handler for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[Server] Listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[Server] Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidInput("invalid JSON body: " + err.Error())
	}
	return nil
}
