package publish

import (
	"encoding/json"
	"fmt"
	"log"

	"FlowTagger/internal/config"
	"FlowTagger/internal/model"

	"github.com/nats-io/nats.go"
)

// ReportMessage is the JSON payload published for one finished run.
type ReportMessage struct {
	Timestamp    string                   `json:"timestamp"`
	Records      uint64                   `json:"records"`
	Tags         []model.TagCount         `json:"tags"`
	Combinations []model.CombinationCount `json:"combinations"`
}

// Publisher is responsible for publishing finalized reports to a NATS topic.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(cfg config.PublisherConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &Publisher{nc: nc, subject: cfg.Subject}, nil
}

// Publish serializes the report to JSON and publishes it to the configured
// NATS subject.
func (p *Publisher) Publish(report *model.Report, timestamp string) error {
	msg := ReportMessage{
		Timestamp:    timestamp,
		Records:      report.TotalRecords(),
		Tags:         report.SortedTags(),
		Combinations: report.SortedCombinations(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal report message: %w", err)
	}

	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
