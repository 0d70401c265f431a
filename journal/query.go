package journal

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/perf2csv/ledger"
	"github.com/shopspring/decimal"
)

// GetRun returns a run and its leg count.
func (j *SQLiteJournal) GetRun(runID string) (Run, error) {
	var r Run
	err := j.db.QueryRow(`
		SELECT r.run_id, r.source, r.created, COUNT(l.seq)
		FROM runs r LEFT JOIN legs l ON l.run_id = r.run_id
		WHERE r.run_id = ?
		GROUP BY r.run_id`, runID).Scan(&r.RunID, &r.Source, &r.Created, &r.Legs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// Legs returns the legs of a run in the order they were recorded.
func (j *SQLiteJournal) Legs(runID string) ([]ledger.TradeLeg, error) {
	rows, err := j.db.Query(`
		SELECT symbol, timestamp, price, contracts, fee, point_value
		FROM legs
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.TradeLeg
	for rows.Next() {
		var (
			l                             ledger.TradeLeg
			price, contracts, fee, pointV string
		)
		if err := rows.Scan(&l.Symbol, &l.Timestamp, &price, &contracts, &fee, &pointV); err != nil {
			return nil, err
		}
		if l.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("price: %w", err)
		}
		if l.Contracts, err = decimal.NewFromString(contracts); err != nil {
			return nil, fmt.Errorf("contracts: %w", err)
		}
		if l.Fee, err = decimal.NewFromString(fee); err != nil {
			return nil, fmt.Errorf("fee: %w", err)
		}
		if l.PointValue, err = decimal.NewFromString(pointV); err != nil {
			return nil, fmt.Errorf("point value: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
