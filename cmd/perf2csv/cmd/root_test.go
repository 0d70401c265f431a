package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeInputs(t *testing.T, dir string) (report, symbols string) {
	t.Helper()
	symbols = filepath.Join(dir, "symbol.csv")
	require.NoError(t, os.WriteFile(symbols, []byte("商品名稱,一大點價值,手續費\nTestInst,50,2\n"), 0644))

	report = filepath.Join(dir, "report.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "List of Trades"))
	require.NoError(t, f.SetSheetRow("List of Trades", "A3", &[]any{"Type", "Symbol Name", "Date", "Time", "Price", "Contracts"}))
	require.NoError(t, f.SetSheetRow("List of Trades", "A4", &[]any{"EntryLong", "TestInst", "2024/01/01", "09:00", 100, 1}))
	require.NoError(t, f.SetSheetRow("List of Trades", "A5", &[]any{"ExitLong", "TestInst", "2024/01/01", "10:00", 110, 1}))
	require.NoError(t, f.SaveAs(report))
	return report, symbols
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "perf2csv version "+version)
}

func TestConvertDryRun(t *testing.T) {
	dir := t.TempDir()
	report, symbols := writeInputs(t, dir)
	output := filepath.Join(dir, "out.csv")

	out, err := execute(t, "--report", report, "--symbols", symbols, "--output", output, "--log-level", "error", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 2 rows into 2 legs")
	assert.Contains(t, out, "| TestInst | 2024/01/01 10:00:00 | 110 | -1 | 2 | 50 |")

	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
	dryRun = false
}

func TestConvertWritesCSV(t *testing.T) {
	dir := t.TempDir()
	report, symbols := writeInputs(t, dir)
	output := filepath.Join(dir, "out.csv")

	out, err := execute(t, "--report", report, "--symbols", symbols, "--output", output, "--log-level", "error", "--no-fee")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "\ufeff商品名稱,交易時間,成交價,成交口數,一大點價值\n"+
		"TestInst,2024/01/01 09:00:00,100,1,50\n"+
		"TestInst,2024/01/01 10:00:00,110,-1,50\n", string(data))
	noFee = false
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--report", filepath.Join(dir, "nope.xlsx"), "--symbols", filepath.Join(dir, "nope.csv"), "--log-level", "error")
	assert.ErrorContains(t, err, "input file not found")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perf2csv.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Portfolio Performance Report.xlsx")
}
