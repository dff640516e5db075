package factory

import (
	"fmt"
	"log"

	"FlowTagger/internal/config"
	"FlowTagger/internal/model"
)

// WriterFactory defines a function that creates a report writer from its
// config definition.
type WriterFactory func(def config.WriterDef) (model.Writer, error)

// registry holds the mapping of writer types to their factory functions.
var registry = make(map[string]WriterFactory)

// RegisterWriter registers a new writer type with its factory function.
func RegisterWriter(name string, factory WriterFactory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("writer type '%s' already registered", name))
	}
	registry[name] = factory
}

// CreateWriters builds all enabled writers from the config. Unknown types
// and writers that fail to initialize are logged and skipped, so one bad
// sink never blocks the run.
func CreateWriters(defs []config.WriterDef) []model.Writer {
	writers := make([]model.Writer, 0, len(defs))

	for _, def := range defs {
		if !def.Enabled {
			continue
		}

		factory, ok := registry[def.Type]
		if !ok {
			log.Printf("Warning: unknown writer type '%s' in config, skipping.", def.Type)
			continue
		}

		writer, err := factory(def)
		if err != nil {
			log.Printf("Warning: failed to create writer type '%s': %v, skipping.", def.Type, err)
			continue
		}
		writers = append(writers, writer)
	}

	return writers
}
