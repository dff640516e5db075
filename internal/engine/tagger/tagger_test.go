package tagger

import (
	"strings"
	"testing"

	"FlowTagger/internal/engine/lookup"
	"FlowTagger/internal/model"
)

func mustIndex(t *testing.T, table string) *lookup.Index {
	t.Helper()
	idx, err := lookup.Load(strings.NewReader(table))
	if err != nil {
		t.Fatalf("Failed to build index: %v", err)
	}
	return idx
}

func logLine(dstport, protocol string) string {
	return "2 123456789012 eni-1234567890 10.0.1.1 10.0.1.2 49152 " + dstport + " " + protocol +
		" 10 100 1234567890 1234567891 ACCEPT OK"
}

func TestAggregatorTagsMatchingRecord(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n80,tcp,web\n"))

	if !agg.ProcessLine(logLine("80", "6")) {
		t.Fatal("Expected line to be processed")
	}

	report := agg.Report()
	if got := report.TagCounts["web"]; got != 1 {
		t.Errorf("TagCounts[web] = %d, expected 1", got)
	}
	if got := report.PortProtocolCounts[model.LookupKey{Port: 80, Protocol: "tcp"}]; got != 1 {
		t.Errorf("PortProtocolCounts[80/tcp] = %d, expected 1", got)
	}
}

func TestAggregatorEmptyIndexUntagged(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n"))

	agg.ProcessLine(logLine("443", "6"))

	report := agg.Report()
	if got := report.TagCounts[Untagged]; got != 1 {
		t.Errorf("TagCounts[Untagged] = %d, expected 1", got)
	}
	if got := report.PortProtocolCounts[model.LookupKey{Port: 443, Protocol: "tcp"}]; got != 1 {
		t.Errorf("PortProtocolCounts[443/tcp] = %d, expected 1", got)
	}
}

func TestAggregatorUnknownProtocol(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n22,tcp,ssh\n"))

	agg.ProcessLine(logLine("22", "99"))

	report := agg.Report()
	if got := report.PortProtocolCounts[model.LookupKey{Port: 22, Protocol: "unknown"}]; got != 1 {
		t.Errorf("PortProtocolCounts[22/unknown] = %d, expected 1", got)
	}
	// The ssh entry is keyed on tcp, so the unknown-protocol record stays untagged.
	if got := report.TagCounts[Untagged]; got != 1 {
		t.Errorf("TagCounts[Untagged] = %d, expected 1", got)
	}
	if got := report.TagCounts["ssh"]; got != 0 {
		t.Errorf("TagCounts[ssh] = %d, expected 0", got)
	}
}

func TestAggregatorSkipsMalformedLines(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n80,tcp,web\n"))

	if agg.ProcessLine("2 x y z w") {
		t.Error("Expected a five-field line to be skipped")
	}
	if agg.ProcessLine("") {
		t.Error("Expected an empty line to be skipped")
	}

	report := agg.Report()
	if report.TotalRecords() != 0 {
		t.Errorf("Expected no records counted, got %d", report.TotalRecords())
	}
	if len(report.PortProtocolCounts) != 0 {
		t.Errorf("Expected no combinations counted, got %d", len(report.PortProtocolCounts))
	}
}

func TestAggregatorLastLookupRowWins(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n80,tcp,web1\n80,tcp,web2\n"))

	agg.ProcessLine(logLine("80", "6"))

	report := agg.Report()
	if got := report.TagCounts["web2"]; got != 1 {
		t.Errorf("TagCounts[web2] = %d, expected 1", got)
	}
	if got := report.TagCounts["web1"]; got != 0 {
		t.Errorf("TagCounts[web1] = %d, expected 0", got)
	}
}

func TestAggregatorRun(t *testing.T) {
	flowLog := strings.Join([]string{
		logLine("80", "6"),
		logLine("443", "6"),
		logLine("53", "17"),
		"", // empty line
		"invalid line",
		logLine("not_a_port", "6"),
		logLine("80", "99"),   // unknown protocol
		logLine("8080", "6"),  // untagged combination
	}, "\n") + "\n"

	agg := New(mustIndex(t, "dstport,protocol,tag\n80,tcp,web\n443,tcp,web\n53,udp,dns\n"))
	if err := agg.Run(strings.NewReader(flowLog)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	report := agg.Report()

	// Five parseable lines: both reports account for every one of them.
	if got := report.TotalRecords(); got != 5 {
		t.Errorf("TotalRecords = %d, expected 5", got)
	}
	var comboTotal uint64
	for _, c := range report.PortProtocolCounts {
		comboTotal += c
	}
	if comboTotal != report.TotalRecords() {
		t.Errorf("Combination totals (%d) should equal tag totals (%d)", comboTotal, report.TotalRecords())
	}

	if got := report.TagCounts["web"]; got != 2 {
		t.Errorf("TagCounts[web] = %d, expected 2", got)
	}
	if got := report.TagCounts["dns"]; got != 1 {
		t.Errorf("TagCounts[dns] = %d, expected 1", got)
	}
	if got := report.TagCounts[Untagged]; got != 2 {
		t.Errorf("TagCounts[Untagged] = %d, expected 2", got)
	}
}

func TestAggregatorEmptyLog(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n80,tcp,web\n"))
	if err := agg.Run(strings.NewReader("")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	report := agg.Report()
	if len(report.TagCounts) != 0 || len(report.PortProtocolCounts) != 0 {
		t.Errorf("Expected empty report, got %d tags and %d combinations",
			len(report.TagCounts), len(report.PortProtocolCounts))
	}
}

func TestAggregatorCaseInsensitiveLookup(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n80,TCP,Web\n"))

	agg.ProcessLine(logLine("80", "6"))

	report := agg.Report()
	if got := report.TagCounts["web"]; got != 1 {
		t.Errorf("TagCounts[web] = %d, expected 1 (TCP row should match tcp record)", got)
	}
}

func TestAggregatorReset(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n80,tcp,web\n"))

	agg.ProcessLine(logLine("80", "6"))
	agg.Reset()
	agg.ProcessLine(logLine("80", "6"))

	report := agg.Report()
	if got := report.TagCounts["web"]; got != 1 {
		t.Errorf("TagCounts[web] = %d after reset, expected 1", got)
	}
}

func TestAggregatorReportIsSnapshot(t *testing.T) {
	agg := New(mustIndex(t, "dstport,protocol,tag\n80,tcp,web\n"))

	agg.ProcessLine(logLine("80", "6"))
	report := agg.Report()
	agg.ProcessLine(logLine("80", "6"))

	if got := report.TagCounts["web"]; got != 1 {
		t.Errorf("Snapshot mutated by later processing: TagCounts[web] = %d, expected 1", got)
	}
}
