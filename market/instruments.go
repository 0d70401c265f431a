// market/instruments.go
package market

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SymbolInfo is the per-instrument metadata the ledger needs.
type SymbolInfo struct {
	PointValue decimal.Decimal
	Fee        FeeSchedule
}

// SymbolTable maps a normalized instrument name to its SymbolInfo. It is
// read-only once loaded.
type SymbolTable map[string]SymbolInfo

// Column aliases accepted in the symbol file header, in lookup order.
var (
	NameColumns       = []string{"商品名稱", "Symbol Name", "Symbol", "Instrument"}
	PointValueColumns = []string{"一大點價值", "Point Value", "BigPointValue", "Big Point Value"}
	FeeColumns        = []string{"手續費", "Fee", "Commission"}
)

var ErrMissingColumn = errors.New("missing required column")

// NormalizeName is the key used for symbol lookups.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// Lookup returns the info for name. Unknown instruments get the zero info,
// i.e. point value 0 and no fee.
func (t SymbolTable) Lookup(name string) SymbolInfo {
	info, ok := t[NormalizeName(name)]
	if !ok {
		return SymbolInfo{}
	}
	return info
}

// LoadSymbols reads the symbol file at path.
func LoadSymbols(path string) (SymbolTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadSymbols(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadSymbols parses a comma separated symbol table. A leading byte-order
// mark is dropped; UTF-16 input is decoded when it carries a BOM.
func ReadSymbols(r io.Reader) (SymbolTable, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	nameIdx := columnIndex(header, NameColumns)
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, NameColumns[0])
	}
	pvIdx := columnIndex(header, PointValueColumns)
	if pvIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, PointValueColumns[0])
	}
	feeIdx := columnIndex(header, FeeColumns)

	t := SymbolTable{}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		name := NormalizeName(cell(rec, nameIdx))
		if name == "" {
			continue
		}

		var info SymbolInfo
		if s := strings.TrimSpace(cell(rec, pvIdx)); s != "" {
			info.PointValue, err = decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: point value %q: %w", line, s, err)
			}
		}
		if feeIdx >= 0 {
			info.Fee, err = ParseFeeSchedule(cell(rec, feeIdx))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		t[name] = info
	}
	return t, nil
}

func columnIndex(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), alias) {
				return i
			}
		}
	}
	return -1
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
