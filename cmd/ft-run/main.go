package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"FlowTagger/internal/config"
	"FlowTagger/internal/engine/lookup"
	"FlowTagger/internal/engine/tagger"
	"FlowTagger/internal/factory"
	"FlowTagger/internal/publish"
	"FlowTagger/internal/writer"
)

const configPath = "configs/config.yaml"

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  ft-run")
	fmt.Println("  ft-run <flow_log_file> <lookup_file> <output_file>")
	fmt.Println("\nIf no arguments are provided, the program will look for:")
	fmt.Printf("  - Flow log file: %s\n", config.DefaultFlowLogPath)
	fmt.Printf("  - Lookup table: %s\n", config.DefaultLookupPath)
	fmt.Printf("  - Output file: %s\n", config.DefaultOutputPath)
	os.Exit(1)
}

func main() {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = config.Default()
	}

	switch len(os.Args) {
	case 1:
		// Paths come from the config, or the defaults.
	case 4:
		cfg.Input.FlowLogPath = os.Args[1]
		cfg.Input.LookupPath = os.Args[2]
		cfg.Input.OutputPath = os.Args[3]
	default:
		usage()
	}

	index, err := lookup.LoadFile(cfg.Input.LookupPath)
	if err != nil {
		log.Fatalf("Failed to load lookup table: %v", err)
	}
	log.Printf("Loaded %d lookup entries from %s", index.Len(), cfg.Input.LookupPath)

	flowLog, err := os.Open(cfg.Input.FlowLogPath)
	if err != nil {
		log.Fatalf("Failed to open flow log '%s': %v", cfg.Input.FlowLogPath, err)
	}
	defer flowLog.Close()

	agg := tagger.New(index)
	if err := agg.Run(flowLog); err != nil {
		log.Fatalf("Failed to process flow log: %v", err)
	}

	report := agg.Report()
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	if err := writer.NewCSVWriter(cfg.Input.OutputPath).Write(report, timestamp); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}

	// Additional sinks from the config are best effort.
	for _, w := range factory.CreateWriters(cfg.Writers) {
		if err := w.Write(report, timestamp); err != nil {
			log.Printf("Warning: writer failed: %v", err)
		}
	}

	if cfg.Publisher.Enabled {
		publisher, err := publish.NewPublisher(cfg.Publisher)
		if err != nil {
			log.Printf("Warning: failed to connect publisher: %v", err)
		} else {
			defer publisher.Close()
			if err := publisher.Publish(report, timestamp); err != nil {
				log.Printf("Warning: failed to publish report: %v", err)
			}
		}
	}

	fmt.Printf("Results written to '%s'\n", cfg.Input.OutputPath)
}
