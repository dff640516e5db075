package model

// Writer defines a generic interface for persisting a finalized report.
type Writer interface {
	// Write takes the report of one aggregation run and persists it.
	// The timestamp identifies the run, formatted as "2006-01-02_15-04-05".
	Write(report *Report, timestamp string) error
}
