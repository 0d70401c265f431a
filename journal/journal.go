// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/perf2csv/ledger"
)

// Output column names, in order. The fee column is optional.
const (
	ColSymbol     = "商品名稱"
	ColTimestamp  = "交易時間"
	ColPrice      = "成交價"
	ColContracts  = "成交口數"
	ColFee        = "手續費"
	ColPointValue = "一大點價值"
)

// Header returns the output header row.
func Header(includeFee bool) []string {
	h := []string{ColSymbol, ColTimestamp, ColPrice, ColContracts}
	if includeFee {
		h = append(h, ColFee)
	}
	return append(h, ColPointValue)
}

// Record renders a leg as an output row matching Header.
func Record(l ledger.TradeLeg, includeFee bool) []string {
	r := []string{l.Symbol, l.Timestamp, l.Price.String(), l.Contracts.String()}
	if includeFee {
		r = append(r, l.Fee.String())
	}
	return append(r, l.PointValue.String())
}

// Run describes one conversion stored in a SQLite journal.
type Run struct {
	RunID   string
	Source  string
	Created time.Time
	Legs    int
}

// Journal receives the legs of one conversion run.
type Journal interface {
	RecordLeg(ledger.TradeLeg) error
	Close() error
}
