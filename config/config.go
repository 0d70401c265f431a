package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Conventional file names, resolved from the working directory.
const (
	DefaultReportFile  = "Portfolio Performance Report.xlsx"
	DefaultSymbolsFile = "symbol.csv"
	DefaultOutputFile  = "portfolio_trades.csv"
	DefaultDBFile      = "perf2csv.sqlite"
)

// Config represents one conversion run.
type Config struct {
	Input    InputConfig    `json:"input" yaml:"input"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Report   ReportConfig   `json:"report" yaml:"report"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// InputConfig names the two input files
type InputConfig struct {
	Report  string `json:"report" yaml:"report"`
	Symbols string `json:"symbols" yaml:"symbols"`
}

// OutputConfig selects the sink
type OutputConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	IncludeFee bool   `json:"include_fee" yaml:"include_fee"`
}

// ReportConfig describes where the trades live in the workbook
type ReportConfig struct {
	Sheets    []string `json:"sheets,omitempty" yaml:"sheets,omitempty"`
	HeaderRow int      `json:"header_row" yaml:"header_row"`
}

// ClassifyConfig holds the trade type policy
type ClassifyConfig struct {
	UnknownType string `json:"unknown_type" yaml:"unknown_type"` // "sell" or "reject"
}

// LogConfig contains logger settings
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// on top of Default.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Environment variables read by ApplyEnv.
const (
	EnvReport     = "PERF2CSV_REPORT"
	EnvSymbols    = "PERF2CSV_SYMBOLS"
	EnvOutput     = "PERF2CSV_OUTPUT"
	EnvOutputType = "PERF2CSV_OUTPUT_TYPE"
	EnvDBPath     = "PERF2CSV_DB"
	EnvIncludeFee = "PERF2CSV_INCLUDE_FEE"
	EnvLogLevel   = "PERF2CSV_LOG_LEVEL"
)

// ApplyEnv loads an optional .env file and overrides fields from the
// PERF2CSV_* variables that are set.
func (c *Config) ApplyEnv() error {
	// A missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	setString(&c.Input.Report, EnvReport)
	setString(&c.Input.Symbols, EnvSymbols)
	setString(&c.Output.Path, EnvOutput)
	setString(&c.Output.Type, EnvOutputType)
	setString(&c.Output.DBPath, EnvDBPath)
	setString(&c.Log.Level, EnvLogLevel)

	if v, ok := os.LookupEnv(EnvIncludeFee); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIncludeFee, err)
		}
		c.Output.IncludeFee = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input.Report == "" {
		return fmt.Errorf("input.report is required")
	}
	if c.Input.Symbols == "" {
		return fmt.Errorf("input.symbols is required")
	}
	if c.Output.Type != "csv" && c.Output.Type != "sqlite" {
		return fmt.Errorf("output.type must be 'csv' or 'sqlite'")
	}
	if c.Output.Type == "csv" && c.Output.Path == "" {
		return fmt.Errorf("output.path required for CSV type")
	}
	if c.Output.Type == "sqlite" && c.Output.DBPath == "" {
		return fmt.Errorf("output.db_path required for SQLite type")
	}
	if c.Report.HeaderRow < 1 {
		return fmt.Errorf("report.header_row must be positive")
	}
	switch c.Classify.UnknownType {
	case "sell", "reject":
	default:
		return fmt.Errorf("classify.unknown_type must be 'sell' or 'reject'")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Default returns the conventional single-directory setup.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Report:  DefaultReportFile,
			Symbols: DefaultSymbolsFile,
		},
		Output: OutputConfig{
			Type:       "csv",
			Path:       DefaultOutputFile,
			DBPath:     DefaultDBFile,
			IncludeFee: true,
		},
		Report: ReportConfig{
			Sheets:    []string{"List of Trades", "交易清單", "交易列表", "交易明細"},
			HeaderRow: 3,
		},
		Classify: ClassifyConfig{
			UnknownType: "sell",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
