package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/perf2csv/ledger"
	"github.com/rustyeddy/perf2csv/pkg/id"
)

var ErrNoRun = errors.New("no run started")

// SQLiteJournal stores each conversion as a run with its legs.
type SQLiteJournal struct {
	db    *sql.DB
	runID string
	seq   int
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

// StartRun opens a new run; following RecordLeg calls belong to it.
func (j *SQLiteJournal) StartRun(source string) (string, error) {
	runID := id.New()
	_, err := j.db.Exec(`INSERT INTO runs (run_id, source, created) VALUES (?, ?, ?)`,
		runID, source, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	j.runID = runID
	j.seq = 0
	return runID, nil
}

func (j *SQLiteJournal) RunID() string { return j.runID }

func (j *SQLiteJournal) RecordLeg(l ledger.TradeLeg) error {
	if j.runID == "" {
		return ErrNoRun
	}
	_, err := j.db.Exec(`
		INSERT INTO legs
		(run_id, seq, symbol, timestamp, price, contracts, fee, point_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		j.runID, j.seq, l.Symbol, l.Timestamp, l.Price.String(),
		l.Contracts.String(), l.Fee.String(), l.PointValue.String(),
	)
	if err != nil {
		return err
	}
	j.seq++
	return nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
