package cmd

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/perf2csv/internal/convert"
	"github.com/rustyeddy/perf2csv/internal/logger"
	"github.com/rustyeddy/perf2csv/journal"
	"github.com/spf13/cobra"
)

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	out := cmd.OutOrStdout()
	res, err := convert.Run(cfg, convert.Options{DryRun: dryRun}, log)
	switch {
	case errors.Is(err, convert.ErrNoData):
		fmt.Fprintf(out, "No trades found in %s\n", cfg.Input.Report)
		return err
	case err != nil:
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
		return err
	}

	fmt.Fprintf(out, "✓ Processed %d rows into %d legs\n", res.Rows, len(res.Legs))
	if dryRun {
		fmt.Fprintln(out)
		fmt.Fprint(out, journal.FormatLegsOrg(res.Legs, cfg.Output.IncludeFee))
		return nil
	}
	fmt.Fprintf(out, "✓ Saved %s\n", res.Output)
	if res.RunID != "" {
		fmt.Fprintf(out, "  Run: %s\n", res.RunID)
	}
	return nil
}
