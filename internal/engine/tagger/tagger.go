package tagger

import (
	"bufio"
	"fmt"
	"io"

	"FlowTagger/internal/engine/flowlog"
	"FlowTagger/internal/engine/lookup"
	"FlowTagger/internal/model"
)

// Untagged is the bucket for parseable records whose (port, protocol) has no
// lookup entry.
const Untagged = "Untagged"

// Aggregator performs one tagging pass over a flow log. It owns the two
// count maps; a fresh Aggregator starts from zero, so separate runs never
// contaminate each other.
type Aggregator struct {
	index       *lookup.Index
	tagCounts   map[string]uint64
	comboCounts map[model.LookupKey]uint64
}

// New creates an Aggregator classifying against the given index.
func New(index *lookup.Index) *Aggregator {
	return &Aggregator{
		index:       index,
		tagCounts:   make(map[string]uint64),
		comboCounts: make(map[model.LookupKey]uint64),
	}
}

// ProcessLine parses one flow log line and, if it is well formed, feeds it
// through classification. It returns true when the line contributed to the
// counts and false when it was skipped.
func (a *Aggregator) ProcessLine(line string) bool {
	record, ok := flowlog.ParseLine(line)
	if !ok {
		return false
	}
	a.ProcessRecord(record)
	return true
}

// ProcessRecord classifies an already-parsed record. Each record increments
// the combination count for its (port, protocol) and exactly one tag count,
// falling back to the Untagged bucket when the index has no entry.
func (a *Aggregator) ProcessRecord(record model.FlowRecord) {
	key := model.LookupKey{Port: record.DstPort, Protocol: record.Protocol}
	a.comboCounts[key]++

	if tag, ok := a.index.Lookup(record.DstPort, record.Protocol); ok {
		a.tagCounts[tag]++
	} else {
		a.tagCounts[Untagged]++
	}
}

// Run streams lines from r through the aggregator, one at a time. Only a
// read failure on the underlying stream is reported; malformed lines are
// skipped silently.
func (a *Aggregator) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		a.ProcessLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read flow log: %w", err)
	}
	return nil
}

// Report returns a deep copy of the current counts, so the caller's report
// stays stable even if the aggregator keeps processing.
func (a *Aggregator) Report() *model.Report {
	tags := make(map[string]uint64, len(a.tagCounts))
	for tag, count := range a.tagCounts {
		tags[tag] = count
	}
	combos := make(map[model.LookupKey]uint64, len(a.comboCounts))
	for key, count := range a.comboCounts {
		combos[key] = count
	}
	return &model.Report{TagCounts: tags, PortProtocolCounts: combos}
}

// Reset clears the internal counts, preparing for a new run.
func (a *Aggregator) Reset() {
	a.tagCounts = make(map[string]uint64)
	a.comboCounts = make(map[model.LookupKey]uint64)
}
