package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default input/output file names, used when neither the config file nor the
// command line provides a path.
const (
	DefaultFlowLogPath = "flow_logs.txt"
	DefaultLookupPath  = "lookup_table.csv"
	DefaultOutputPath  = "results.csv"
)

// InputConfig holds the file paths for one tagging run.
type InputConfig struct {
	FlowLogPath string `yaml:"flow_log_path"`
	LookupPath  string `yaml:"lookup_path"`
	OutputPath  string `yaml:"output_path"`
}

// ClickHouseConfig holds the connection settings for the ClickHouse writer.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// CSVConfig holds the settings for an additional CSV sink beyond the main
// output file.
type CSVConfig struct {
	Path string `yaml:"path"`
}

// WriterDef defines one report sink from the config file.
type WriterDef struct {
	Type       string           `yaml:"type"`
	Enabled    bool             `yaml:"enabled"`
	CSV        CSVConfig        `yaml:"csv"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
}

// PublisherConfig holds the settings for the NATS report publisher.
type PublisherConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// APIConfig holds the settings for the report API server.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Writers   []WriterDef     `yaml:"writers"`
	Publisher PublisherConfig `yaml:"publisher"`
	API       APIConfig       `yaml:"api"`
}

// Default returns a Config populated with the default file paths and no
// extra writers.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			FlowLogPath: DefaultFlowLogPath,
			LookupPath:  DefaultLookupPath,
			OutputPath:  DefaultOutputPath,
		},
		API: APIConfig{ListenAddr: ":8080"},
	}
}

// LoadConfig reads the configuration from a YAML file and returns a Config
// struct. Paths left empty in the file fall back to the defaults.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	if cfg.Input.FlowLogPath == "" {
		cfg.Input.FlowLogPath = DefaultFlowLogPath
	}
	if cfg.Input.LookupPath == "" {
		cfg.Input.LookupPath = DefaultLookupPath
	}
	if cfg.Input.OutputPath == "" {
		cfg.Input.OutputPath = DefaultOutputPath
	}

	return cfg, nil
}
