package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FlowTagger/internal/api"
	"FlowTagger/internal/config"
	"FlowTagger/internal/engine/lookup"
	"FlowTagger/internal/engine/tagger"
)

func main() {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	index, err := lookup.LoadFile(cfg.Input.LookupPath)
	if err != nil {
		log.Fatalf("Failed to load lookup table: %v", err)
	}

	flowLog, err := os.Open(cfg.Input.FlowLogPath)
	if err != nil {
		log.Fatalf("Failed to open flow log '%s': %v", cfg.Input.FlowLogPath, err)
	}

	agg := tagger.New(index)
	if err := agg.Run(flowLog); err != nil {
		flowLog.Close()
		log.Fatalf("Failed to process flow log: %v", err)
	}
	flowLog.Close()

	report := agg.Report()
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	log.Printf("Aggregated %d records from %s", report.TotalRecords(), cfg.Input.FlowLogPath)

	handler := api.NewHandler(report, timestamp)

	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: handler.Router(),
	}

	go func() {
		log.Printf("API server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
