package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"dimcheck/adapters/excel"
	"dimcheck/adapters/postgres"
	"dimcheck/adapters/vision"
	"dimcheck/app"
	"dimcheck/internal/api"
	"dimcheck/internal/config"
	"dimcheck/ports"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] No .env file loaded: %v", err)
	}

	cfg := config.Load()
	if err := cfg.RequireVision(); err != nil {
		log.Fatalf("[Main] %v", err)
	}

	refs := app.NewReferenceService()
	if cfg.Sheet.FilePath != "" {
		reader := excel.NewSheetReader(cfg.Sheet.FilePath)
		if err := refs.LoadFrom(reader, cfg.Sheet.FilePath, cfg.Sheet.ColumnRange()); err != nil {
			log.Fatalf("[Main] Failed to load reference sheet: %v", err)
		}
	}

	var repo ports.OutcomeRepository
	if cfg.Database.URL != "" {
		pg, err := postgres.NewOutcomeRepository(cfg.Database.URL)
		if err != nil {
			log.Fatalf("[Main] Failed to connect to database: %v", err)
		}
		defer pg.Close()
		repo = pg
	} else {
		log.Printf("[Main] DATABASE_URL not set, batch history disabled")
	}

	extractor := vision.NewClient(cfg.Vision)
	batches := app.NewBatchService(refs, extractor, repo, 4)
	server := api.NewServer(refs, batches, repo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.Server.Port); err != nil {
		log.Fatalf("[Main] Server error: %v", err)
	}
	log.Printf("[Main] Shutdown complete")
}
