// Package ledger turns paired report rows into normalized trade legs.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/perf2csv/market"
	"github.com/shopspring/decimal"
)

// Side is the trade type of one report row.
type Side int

const (
	SideUnknown Side = iota
	EntryLong
	ExitLong
	EntryShort
	ExitShort
)

var sideNames = map[Side]string{
	SideUnknown: "Unknown",
	EntryLong:   "EntryLong",
	ExitLong:    "ExitLong",
	EntryShort:  "EntryShort",
	ExitShort:   "ExitShort",
}

func (s Side) String() string { return sideNames[s] }

// Localized trade type labels. Keys are compared after trimming.
var localizedSides = map[string]Side{
	"多單進場": EntryLong,
	"多頭進場": EntryLong,
	"多單出場": ExitLong,
	"多頭出場": ExitLong,
	"空單進場": EntryShort,
	"空頭進場": EntryShort,
	"空單出場": ExitShort,
	"空頭出場": ExitShort,
}

// ParseSide recognizes "EntryLong" style labels (case and inner spaces are
// ignored) and the Chinese report labels.
func ParseSide(s string) Side {
	s = strings.TrimSpace(s)
	if side, ok := localizedSides[s]; ok {
		return side
	}
	key := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	switch key {
	case "entrylong":
		return EntryLong
	case "exitlong":
		return ExitLong
	case "entryshort":
		return EntryShort
	case "exitshort":
		return ExitShort
	}
	return SideUnknown
}

// Buy reports whether the side adds contracts: entering long or covering a
// short.
func (s Side) Buy() bool {
	return s == EntryLong || s == ExitShort
}

// UnknownTypePolicy decides what happens to a row whose trade type is not
// recognized.
//
// UnknownAsSell treats it as a sell, which is what the report converter has
// always done. It silently flips the sign of any mislabelled buy, so prefer
// UnknownReject when the input is not trusted.
type UnknownTypePolicy int

const (
	UnknownAsSell UnknownTypePolicy = iota
	UnknownReject
)

var ErrUnknownTradeType = errors.New("unknown trade type")

func ParseUnknownTypePolicy(s string) (UnknownTypePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sell":
		return UnknownAsSell, nil
	case "reject":
		return UnknownReject, nil
	default:
		return 0, fmt.Errorf("unknown trade type policy %q (use sell or reject)", s)
	}
}

func (p UnknownTypePolicy) String() string {
	if p == UnknownReject {
		return "reject"
	}
	return "sell"
}

// Classification is the signed quantity and commission of one leg.
type Classification struct {
	Side      Side
	Contracts decimal.Decimal
	Fee       decimal.Decimal
}

// Classify signs contracts by trade type and computes the leg's fee from
// info. contracts is taken as an unsigned magnitude.
func Classify(typ string, contracts, price decimal.Decimal, info market.SymbolInfo, policy UnknownTypePolicy) (Classification, error) {
	side := ParseSide(typ)
	qty := contracts.Abs()

	switch {
	case side.Buy():
	case side != SideUnknown:
		qty = qty.Neg()
	case policy == UnknownReject:
		return Classification{}, fmt.Errorf("%w: %q", ErrUnknownTradeType, typ)
	default:
		qty = qty.Neg()
	}

	return Classification{
		Side:      side,
		Contracts: qty,
		Fee:       info.Fee.Fee(price, qty),
	}, nil
}
