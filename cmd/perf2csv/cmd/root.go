package cmd

import (
	"fmt"

	"github.com/rustyeddy/perf2csv/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "perf2csv",
	Short: "Convert a portfolio performance report into a trade ledger CSV",
	Long: `perf2csv reads the "List of Trades" sheet of a Portfolio Performance Report
workbook and writes one ledger row per trade leg with signed contracts,
commission and point value looked up from a symbol table.

Run without arguments in a directory holding:
  Portfolio Performance Report.xlsx   the exported report
  symbol.csv                          商品名稱,一大點價值[,手續費]

and it writes portfolio_trades.csv next to them.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgFile     string
	reportPath  string
	symbolsPath string
	outputPath  string
	sinkType    string
	dbPath      string
	noFee       bool
	unknownType string
	logLevel    string
	dryRun      bool
)

func init() {
	f := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	f.StringVarP(&reportPath, "report", "r", config.DefaultReportFile, "performance report workbook")
	f.StringVarP(&symbolsPath, "symbols", "s", config.DefaultSymbolsFile, "symbol table CSV")
	f.StringVarP(&outputPath, "output", "o", config.DefaultOutputFile, "output CSV path")
	f.StringVar(&sinkType, "sink", "csv", "output sink: csv or sqlite")
	f.StringVar(&dbPath, "db", config.DefaultDBFile, "SQLite journal path for --sink sqlite")
	f.BoolVar(&noFee, "no-fee", false, "omit the fee column")
	f.StringVar(&unknownType, "unknown-type", "sell", "unrecognized trade types: sell or reject")
	f.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.BoolVar(&dryRun, "dry-run", false, "print the legs instead of writing them")
}

// loadConfig layers defaults, the config file, PERF2CSV_* variables and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("report") {
		cfg.Input.Report = reportPath
	}
	if flags.Changed("symbols") {
		cfg.Input.Symbols = symbolsPath
	}
	if flags.Changed("output") {
		cfg.Output.Path = outputPath
	}
	if flags.Changed("sink") {
		cfg.Output.Type = sinkType
	}
	if flags.Changed("db") {
		cfg.Output.DBPath = dbPath
	}
	if flags.Changed("no-fee") {
		cfg.Output.IncludeFee = !noFee
	}
	if flags.Changed("unknown-type") {
		cfg.Classify.UnknownType = unknownType
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
