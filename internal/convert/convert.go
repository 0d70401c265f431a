// Package convert runs one report-to-ledger conversion from a Config.
package convert

import (
	"errors"
	"fmt"
	"os"

	"github.com/rustyeddy/perf2csv/config"
	"github.com/rustyeddy/perf2csv/journal"
	"github.com/rustyeddy/perf2csv/ledger"
	"github.com/rustyeddy/perf2csv/market"
	"github.com/rustyeddy/perf2csv/report"
	"go.uber.org/zap"
)

// Whole-run failures. Per-row problems never surface here; the engine logs
// them and keeps going.
var (
	ErrMissingInput = errors.New("input file not found")
	ErrSymbolTable  = errors.New("symbol table unreadable")
	ErrReport       = errors.New("performance report unreadable")
	ErrNoData       = errors.New("no trade data")
	ErrOutput       = errors.New("output write failed")
)

// Options adjust a run beyond what Config holds.
type Options struct {
	// DryRun converts without writing the output.
	DryRun bool
}

type Result struct {
	Rows   int
	Legs   []ledger.TradeLeg
	RunID  string
	Output string
}

// Run reads the symbol table and report named by cfg, pairs the trades and
// writes the legs to the configured sink.
func Run(cfg *config.Config, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	policy, err := ledger.ParseUnknownTypePolicy(cfg.Classify.UnknownType)
	if err != nil {
		return nil, err
	}

	for _, path := range []string{cfg.Input.Report, cfg.Input.Symbols} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
	}

	log.Info("reading symbol table", zap.String("path", cfg.Input.Symbols))
	symbols, err := market.LoadSymbols(cfg.Input.Symbols)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSymbolTable, err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: %s has no instruments", ErrSymbolTable, cfg.Input.Symbols)
	}

	log.Info("reading performance report", zap.String("path", cfg.Input.Report))
	rep, err := report.Open(cfg.Input.Report, report.Options{
		Sheets:    cfg.Report.Sheets,
		HeaderRow: cfg.Report.HeaderRow,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReport, err)
	}
	log.Info("trade rows loaded", zap.String("sheet", rep.Sheet), zap.Int("rows", len(rep.Rows)))

	engine := ledger.NewEngine(symbols, log)
	engine.Policy = policy
	res := &Result{
		Rows: len(rep.Rows),
		Legs: engine.Pair(rep.Rows),
	}
	if len(res.Legs) == 0 {
		return res, ErrNoData
	}
	log.Info("trade rows processed", zap.Int("rows", res.Rows), zap.Int("legs", len(res.Legs)))

	if opts.DryRun {
		return res, nil
	}
	if err := write(cfg, res); err != nil {
		return res, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	log.Info("ledger written", zap.String("output", res.Output), zap.String("run_id", res.RunID))
	return res, nil
}

func write(cfg *config.Config, res *Result) error {
	var j journal.Journal
	switch cfg.Output.Type {
	case "sqlite":
		sj, err := journal.NewSQLite(cfg.Output.DBPath)
		if err != nil {
			return err
		}
		if res.RunID, err = sj.StartRun(cfg.Input.Report); err != nil {
			sj.Close()
			return err
		}
		j, res.Output = sj, cfg.Output.DBPath
	default:
		cj, err := journal.NewCSV(cfg.Output.Path, journal.CSVOptions{IncludeFee: cfg.Output.IncludeFee})
		if err != nil {
			return err
		}
		j, res.Output = cj, cfg.Output.Path
	}

	if err := WriteLegs(j, res.Legs); err != nil {
		j.Close()
		return err
	}
	return j.Close()
}

// WriteLegs records every leg in order.
func WriteLegs(j journal.Journal, legs []ledger.TradeLeg) error {
	for i, l := range legs {
		if err := j.RecordLeg(l); err != nil {
			return fmt.Errorf("leg %d: %w", i, err)
		}
	}
	return nil
}
