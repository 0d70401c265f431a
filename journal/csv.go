// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rustyeddy/perf2csv/ledger"
)

// bom lets spreadsheet tools detect UTF-8 when opening the file.
const bom = "\ufeff"

type CSVOptions struct {
	IncludeFee bool
}

type CSVJournal struct {
	w    *csv.Writer
	f    *os.File
	opts CSVOptions
}

// NewCSV creates the file at path and writes the BOM and header.
func NewCSV(path string, opts CSVOptions) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	j, err := NewCSVWriter(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	j.f = f
	return j, nil
}

// NewCSVWriter writes to w. Close flushes but does not close w.
func NewCSVWriter(w io.Writer, opts CSVOptions) (*CSVJournal, error) {
	if _, err := io.WriteString(w, bom); err != nil {
		return nil, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(opts.IncludeFee)); err != nil {
		return nil, err
	}
	return &CSVJournal{w: cw, opts: opts}, nil
}

func (j *CSVJournal) RecordLeg(l ledger.TradeLeg) error {
	return j.w.Write(Record(l, j.opts.IncludeFee))
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		if j.f != nil {
			j.f.Close()
		}
		return err
	}
	if j.f != nil {
		return j.f.Close()
	}
	return nil
}
