package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheets are tried in order until one exists in the workbook.
var DefaultSheets = []string{"List of Trades", "交易清單", "交易列表", "交易明細"}

// DefaultHeaderRow is the 1-based physical row holding column names; the
// report has two title rows above it.
const DefaultHeaderRow = 3

var ErrSheetNotFound = errors.New("trade sheet not found")

type Options struct {
	Sheets    []string
	HeaderRow int
}

func (o Options) withDefaults() Options {
	if len(o.Sheets) == 0 {
		o.Sheets = DefaultSheets
	}
	if o.HeaderRow <= 0 {
		o.HeaderRow = DefaultHeaderRow
	}
	return o
}

// Report holds the data rows of the selected sheet in file order.
type Report struct {
	Sheet  string
	Header []string
	Rows   []Row
}

// Open reads the trade sheet of the workbook at path.
func Open(path string, opts Options) (*Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return read(f, opts)
}

// ReadWorkbook is Open for an in-memory or streamed workbook.
func ReadWorkbook(r io.Reader, opts Options) (*Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return read(f, opts)
}

func read(f *excelize.File, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	sheet, err := selectSheet(f, opts.Sheets)
	if err != nil {
		return nil, err
	}

	// Raw values keep dates as serial numbers instead of locale formatted text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < opts.HeaderRow {
		return nil, fmt.Errorf("sheet %q: no header at row %d", sheet, opts.HeaderRow)
	}

	header := make([]string, len(rows[opts.HeaderRow-1]))
	for i, h := range rows[opts.HeaderRow-1] {
		header[i] = strings.TrimSpace(h)
	}

	rep := &Report{Sheet: sheet, Header: header}
	for _, rec := range rows[opts.HeaderRow:] {
		if emptyRecord(rec) {
			continue
		}
		row := make(Row, len(header))
		for i, h := range header {
			if h == "" || i >= len(rec) {
				continue
			}
			row[h] = rec[i]
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep, nil
}

func selectSheet(f *excelize.File, names []string) (string, error) {
	list := f.GetSheetList()
	for _, want := range names {
		for _, have := range list {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				return have, nil
			}
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrSheetNotFound, strings.Join(names, ", "))
}

func emptyRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
