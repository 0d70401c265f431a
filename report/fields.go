// Package report reads the "List of Trades" sheet of a portfolio performance
// report and resolves its bilingual column headers to canonical fields.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Field is a canonical trade report column.
type Field int

const (
	Symbol Field = iota
	Type
	Price
	Date
	Time
	Contracts
)

func (f Field) String() string {
	switch f {
	case Symbol:
		return "symbol"
	case Type:
		return "type"
	case Price:
		return "price"
	case Date:
		return "date"
	case Time:
		return "time"
	case Contracts:
		return "contracts"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Row is one report row keyed by header text. Values are usually strings
// read from the sheet; tests and other callers may also hand in time.Time or
// numbers.
type Row map[string]any

// Aliases lists the accepted header names for each field, in lookup order.
type Aliases map[Field][]string

// DefaultAliases covers the English and Traditional Chinese report headers.
var DefaultAliases = Aliases{
	Symbol:    {"Symbol Name", "商品名稱", "Symbol", "商品"},
	Type:      {"Type", "類型", "交易類型"},
	Price:     {"Price", "價格", "成交價"},
	Date:      {"Date", "日期"},
	Time:      {"Time", "時間"},
	Contracts: {"Contracts", "口數", "合約數"},
}

// Resolver maps canonical fields to row values.
type Resolver struct {
	Aliases Aliases
}

func NewResolver() Resolver {
	return Resolver{Aliases: DefaultAliases}
}

// Resolve returns the value of the first alias of f present in row. Blank
// cells count as absent. ok is false when no alias matched.
func (r Resolver) Resolve(row Row, f Field) (v any, ok bool) {
	for _, name := range r.aliases(f) {
		val, found := row[name]
		if !found || blank(val) {
			continue
		}
		return val, true
	}
	return nil, false
}

// Text resolves f and renders it as trimmed text. Missing fields yield "".
func (r Resolver) Text(row Row, f Field) string {
	v, ok := r.Resolve(row, f)
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Decimal resolves f as a number. Thousands separators are ignored.
func (r Resolver) Decimal(row Row, f Field) (decimal.Decimal, error) {
	v, ok := r.Resolve(row, f)
	if !ok {
		return decimal.Zero, fmt.Errorf("%s: not found", f)
	}
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	}
	s := strings.ReplaceAll(strings.TrimSpace(fmt.Sprint(v)), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", f, err)
	}
	return d, nil
}

func (r Resolver) aliases(f Field) []string {
	if r.Aliases == nil {
		return DefaultAliases[f]
	}
	return r.Aliases[f]
}

func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}
