package ledger

import (
	"iter"
	"slices"

	"github.com/rustyeddy/perf2csv/market"
	"github.com/rustyeddy/perf2csv/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TradeLeg is one normalized ledger record: the entry or the exit of a round
// trip.
type TradeLeg struct {
	Symbol     string
	Timestamp  string
	Price      decimal.Decimal
	Contracts  decimal.Decimal
	Fee        decimal.Decimal
	PointValue decimal.Decimal
}

// Engine pairs report rows into trade legs. It keeps no state between calls.
type Engine struct {
	Symbols  market.SymbolTable
	Resolver report.Resolver
	Policy   UnknownTypePolicy
	Logger   *zap.Logger
}

func NewEngine(symbols market.SymbolTable, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Symbols:  symbols,
		Resolver: report.NewResolver(),
		Policy:   UnknownAsSell,
		Logger:   logger,
	}
}

// Legs walks rows two at a time; rows 2i and 2i+1 are the entry and exit of
// one round trip. A trailing unpaired row is dropped.
func (e *Engine) Legs(rows []report.Row) iter.Seq[TradeLeg] {
	return func(yield func(TradeLeg) bool) {
		for i := 0; i+1 < len(rows); i += 2 {
			entry, exit, ok := e.pair(i, rows[i], rows[i+1])
			if !ok {
				continue
			}
			if !yield(entry) || !yield(exit) {
				return
			}
		}
		if len(rows)%2 == 1 {
			e.log().Debug("dropping unpaired trailing row", zap.Int("row", len(rows)-1))
		}
	}
}

// Pair collects Legs.
func (e *Engine) Pair(rows []report.Row) []TradeLeg {
	return slices.Collect(e.Legs(rows))
}

// pair converts one round trip. The exit row's own symbol cell is ignored so
// both legs carry the entry's instrument and symbol info.
func (e *Engine) pair(idx int, first, second report.Row) (entry, exit TradeLeg, ok bool) {
	symbol := e.Resolver.Text(first, report.Symbol)
	info := e.Symbols.Lookup(symbol)
	if _, known := e.Symbols[market.NormalizeName(symbol)]; !known {
		e.log().Warn("instrument not in symbol table, using zero point value and fee",
			zap.Int("row", idx), zap.String("symbol", symbol))
	}

	var err error
	if entry, err = e.leg(idx, first, symbol, info); err != nil {
		e.log().Warn("skipping pair", zap.Int("row", idx), zap.String("symbol", symbol), zap.Error(err))
		return TradeLeg{}, TradeLeg{}, false
	}
	if exit, err = e.leg(idx+1, second, symbol, info); err != nil {
		e.log().Warn("skipping pair", zap.Int("row", idx+1), zap.String("symbol", symbol), zap.Error(err))
		return TradeLeg{}, TradeLeg{}, false
	}
	return entry, exit, true
}

func (e *Engine) leg(idx int, row report.Row, symbol string, info market.SymbolInfo) (TradeLeg, error) {
	price := e.number(idx, row, report.Price)
	contracts := e.number(idx, row, report.Contracts)

	c, err := Classify(e.Resolver.Text(row, report.Type), contracts, price, info, e.Policy)
	if err != nil {
		return TradeLeg{}, err
	}

	return TradeLeg{
		Symbol:     symbol,
		Timestamp:  e.timestamp(idx, row),
		Price:      price,
		Contracts:  c.Contracts,
		Fee:        c.Fee,
		PointValue: info.PointValue.Round(2),
	}, nil
}

// number reads a numeric cell; unreadable values become zero.
func (e *Engine) number(idx int, row report.Row, f report.Field) decimal.Decimal {
	d, err := e.Resolver.Decimal(row, f)
	if err != nil {
		e.log().Warn("unreadable number, using 0", zap.Int("row", idx), zap.Error(err))
		return decimal.Zero
	}
	return d
}

// timestamp combines the row's own date and time. Failures leave the leg
// without a timestamp.
func (e *Engine) timestamp(idx int, row report.Row) string {
	date, _ := e.Resolver.Resolve(row, report.Date)
	clock, _ := e.Resolver.Resolve(row, report.Time)
	ts, err := CombineDateTime(date, clock)
	if err != nil {
		e.log().Warn("datetime combine failed", zap.Int("row", idx), zap.Error(err))
		return ""
	}
	return ts
}

func (e *Engine) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
