package model

import "sort"

// LookupKey identifies a (destination port, protocol name) combination.
// Protocol is always stored lowercase so that keys compare correctly
// regardless of the casing in the source data.
type LookupKey struct {
	Port     int
	Protocol string
}

// FlowRecord holds the fields extracted from a single flow log line.
// Only the destination port and the protocol name are needed for tagging;
// everything else on the line is ignored.
type FlowRecord struct {
	DstPort  int
	Protocol string
}

// TagCount is one row of the tag report.
type TagCount struct {
	Tag   string `json:"tag"`
	Count uint64 `json:"count"`
}

// CombinationCount is one row of the port/protocol report.
type CombinationCount struct {
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	Count    uint64 `json:"count"`
}

// Report is the finalized result of one aggregation pass. The aggregator
// hands out a deep copy, so writers can hold on to it safely.
type Report struct {
	TagCounts          map[string]uint64
	PortProtocolCounts map[LookupKey]uint64
}

// TotalRecords returns the number of parseable records that went into the
// report. Every parseable record contributes exactly one tag increment, so
// summing either map gives the same value.
func (r *Report) TotalRecords() uint64 {
	var total uint64
	for _, c := range r.TagCounts {
		total += c
	}
	return total
}

// SortedTags returns the tag counts ordered lexicographically by tag,
// giving stable output across runs.
func (r *Report) SortedTags() []TagCount {
	rows := make([]TagCount, 0, len(r.TagCounts))
	for tag, count := range r.TagCounts {
		rows = append(rows, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Tag < rows[j].Tag
	})
	return rows
}

// SortedCombinations returns the port/protocol counts ordered by port,
// then protocol.
func (r *Report) SortedCombinations() []CombinationCount {
	rows := make([]CombinationCount, 0, len(r.PortProtocolCounts))
	for key, count := range r.PortProtocolCounts {
		rows = append(rows, CombinationCount{Port: key.Port, Protocol: key.Protocol, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Port != rows[j].Port {
			return rows[i].Port < rows[j].Port
		}
		return rows[i].Protocol < rows[j].Protocol
	})
	return rows
}
