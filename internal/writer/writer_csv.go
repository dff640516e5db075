package writer

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"FlowTagger/internal/config"
	"FlowTagger/internal/factory"
	"FlowTagger/internal/model"
)

func init() {
	factory.RegisterWriter("csv", func(def config.WriterDef) (model.Writer, error) {
		if def.CSV.Path == "" {
			return nil, fmt.Errorf("csv writer requires a path")
		}
		return NewCSVWriter(def.CSV.Path), nil
	})
}

// CSVWriter writes the two-section results file. It implements the
// model.Writer interface.
//
// The layout is a stable format consumed by downstream tooling:
//
//	Tag Counts:
//	Tag,Count
//	...
//
//	Port/Protocol Combination Counts:
//	Port,Protocol,Count
//	...
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a writer producing the results file at path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write renders both report sections to the output file, replacing any
// previous contents. Rows are sorted for stable output across runs.
func (w *CSVWriter) Write(report *model.Report, timestamp string) error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create results file '%s': %w", w.path, err)
	}
	defer file.Close()

	out := bufio.NewWriter(file)

	fmt.Fprintln(out, "Tag Counts:")
	fmt.Fprintln(out, "Tag,Count")
	for _, row := range report.SortedTags() {
		fmt.Fprintf(out, "%s,%d\n", row.Tag, row.Count)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Port/Protocol Combination Counts:")
	fmt.Fprintln(out, "Port,Protocol,Count")
	for _, row := range report.SortedCombinations() {
		fmt.Fprintf(out, "%d,%s,%d\n", row.Port, row.Protocol, row.Count)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write results file '%s': %w", w.path, err)
	}

	log.Printf("Wrote %d records across %d tags to %s", report.TotalRecords(), len(report.TagCounts), w.path)
	return nil
}
