package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "Portfolio Performance Report.xlsx", cfg.Input.Report)
	assert.Equal(t, "symbol.csv", cfg.Input.Symbols)
	assert.Equal(t, "portfolio_trades.csv", cfg.Output.Path)
	assert.True(t, cfg.Output.IncludeFee)
	assert.Equal(t, 3, cfg.Report.HeaderRow)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"missing report", func(c *Config) { c.Input.Report = "" }, "input.report is required"},
		{"missing symbols", func(c *Config) { c.Input.Symbols = "" }, "input.symbols is required"},
		{"bad output type", func(c *Config) { c.Output.Type = "xml" }, "output.type must be"},
		{"csv without path", func(c *Config) { c.Output.Path = "" }, "output.path required"},
		{"sqlite without db", func(c *Config) { c.Output.Type = "sqlite"; c.Output.DBPath = "" }, "output.db_path required"},
		{"sqlite ok without csv path", func(c *Config) { c.Output.Type = "sqlite"; c.Output.Path = "" }, ""},
		{"header row", func(c *Config) { c.Report.HeaderRow = 0 }, "report.header_row must be positive"},
		{"unknown type policy", func(c *Config) { c.Classify.UnknownType = "buy" }, "classify.unknown_type"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Output.IncludeFee = false
			cfg.Classify.UnknownType = "reject"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  symbols: fees.csv\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fees.csv", cfg.Input.Symbols)
	assert.Equal(t, DefaultReportFile, cfg.Input.Report)
	assert.Equal(t, "csv", cfg.Output.Type)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  type: xml\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvReport, "other.xlsx")
	t.Setenv(EnvOutputType, "sqlite")
	t.Setenv(EnvIncludeFee, "false")
	t.Setenv(EnvLogLevel, "debug")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "other.xlsx", cfg.Input.Report)
	assert.Equal(t, DefaultSymbolsFile, cfg.Input.Symbols)
	assert.Equal(t, "sqlite", cfg.Output.Type)
	assert.False(t, cfg.Output.IncludeFee)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnvBadBool(t *testing.T) {
	t.Setenv(EnvIncludeFee, "maybe")
	assert.Error(t, Default().ApplyEnv())
}
