package writer

import (
	"context"
	"fmt"
	"log"
	"time"

	"FlowTagger/internal/config"
	"FlowTagger/internal/factory"
	"FlowTagger/internal/model"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func init() {
	factory.RegisterWriter("clickhouse", func(def config.WriterDef) (model.Writer, error) {
		return NewClickHouseWriter(def.ClickHouse)
	})
}

const createTagTableStatement = `
CREATE TABLE IF NOT EXISTS tag_counts (
    Timestamp DateTime,
    Tag       String,
    Count     UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Tag, Timestamp);
`

const createComboTableStatement = `
CREATE TABLE IF NOT EXISTS port_protocol_counts (
    Timestamp DateTime,
    Port      UInt32,
    Protocol  String,
    Count     UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Port, Protocol, Timestamp);
`

// ClickHouseWriter persists both report sections to ClickHouse. It
// implements the model.Writer interface.
type ClickHouseWriter struct {
	conn driver.Conn
}

// NewClickHouseWriter creates a new ClickHouse writer and ensures both
// report tables exist.
func NewClickHouseWriter(cfg config.ClickHouseConfig) (*ClickHouseWriter, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	for _, stmt := range []string{createTagTableStatement, createComboTableStatement} {
		if err := conn.Exec(context.Background(), stmt); err != nil {
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}
	log.Println("Successfully connected to ClickHouse and ensured tables exist.")

	return &ClickHouseWriter{conn: conn}, nil
}

func connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

// Write batch-inserts both report sections, stamped with the run timestamp.
func (w *ClickHouseWriter) Write(report *model.Report, timestamp string) error {
	runTime, err := time.Parse("2006-01-02_15-04-05", timestamp)
	if err != nil {
		runTime = time.Now().UTC()
	}

	tagBatch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO tag_counts")
	if err != nil {
		return fmt.Errorf("failed to prepare tag batch: %w", err)
	}
	for _, row := range report.SortedTags() {
		if err := tagBatch.Append(runTime, row.Tag, row.Count); err != nil {
			return fmt.Errorf("failed to append tag count to batch: %w", err)
		}
	}
	if err := tagBatch.Send(); err != nil {
		return fmt.Errorf("failed to send tag batch: %w", err)
	}

	comboBatch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO port_protocol_counts")
	if err != nil {
		return fmt.Errorf("failed to prepare combination batch: %w", err)
	}
	for _, row := range report.SortedCombinations() {
		if err := comboBatch.Append(runTime, uint32(row.Port), row.Protocol, row.Count); err != nil {
			return fmt.Errorf("failed to append combination count to batch: %w", err)
		}
	}
	if err := comboBatch.Send(); err != nil {
		return fmt.Errorf("failed to send combination batch: %w", err)
	}

	log.Printf("Wrote %d tag rows and %d combination rows to ClickHouse",
		len(report.TagCounts), len(report.PortProtocolCounts))
	return nil
}
