package market

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FeeSchedule is a per-instrument commission rule: either a flat amount per
// contract or, when Percent is set, a percentage of notional value.
type FeeSchedule struct {
	Amount  decimal.Decimal
	Percent bool
}

// ParseFeeSchedule accepts "" (no fee), a plain number ("5") or a percentage
// ("0.1%").
func ParseFeeSchedule(s string) (FeeSchedule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FeeSchedule{}, nil
	}

	pct := strings.HasSuffix(s, "%")
	if pct {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return FeeSchedule{}, fmt.Errorf("fee schedule %q: %w", s, err)
	}
	return FeeSchedule{Amount: d, Percent: pct}, nil
}

func (f FeeSchedule) IsZero() bool {
	return f.Amount.IsZero()
}

// Fee returns the commission for trading contracts at price. The result is
// never negative; the sign of contracts does not matter.
func (f FeeSchedule) Fee(price, contracts decimal.Decimal) decimal.Decimal {
	if f.IsZero() {
		return decimal.Zero
	}
	qty := contracts.Abs()
	if f.Percent {
		return price.Mul(qty).Mul(f.Amount).Div(hundred).Abs()
	}
	return f.Amount.Mul(qty).Abs()
}

func (f FeeSchedule) String() string {
	if f.Percent {
		return f.Amount.String() + "%"
	}
	return f.Amount.String()
}
