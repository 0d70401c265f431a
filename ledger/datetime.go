package ledger

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// TimestampLayout is the ledger's timestamp format, YYYY/MM/DD HH:MM:SS.
const TimestampLayout = "2006/01/02 15:04:05"

var ErrMissingValue = errors.New("missing value")

var dateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	"2006/1/2",
	"2006-1-2",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"15:04:05.000",
	"3:04:05 PM",
	"3:04 PM",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// CombineDateTime merges a date cell and a time cell into one
// TimestampLayout string. Each value may be a time.Time, an Excel serial
// number (as a number or numeric text) or formatted text.
func CombineDateTime(date, clock any) (string, error) {
	d, err := parseDate(date)
	if err != nil {
		return "", fmt.Errorf("date %v: %w", date, err)
	}
	c, err := parseClock(clock)
	if err != nil {
		return "", fmt.Errorf("time %v: %w", clock, err)
	}
	ts := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Add(c)
	return ts.Format(TimestampLayout), nil
}

func parseDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, ErrMissingValue
	case time.Time:
		if x.IsZero() {
			return time.Time{}, ErrMissingValue
		}
		return x, nil
	case float64:
		return serialDate(x)
	case int:
		return serialDate(float64(x))
	case int64:
		return serialDate(float64(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, ErrMissingValue
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return serialDate(f)
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

func serialDate(f float64) (time.Time, error) {
	return excelize.ExcelDateToTime(math.Floor(f), false)
}

// parseClock returns the time of day as an offset from midnight.
func parseClock(v any) (time.Duration, error) {
	switch x := v.(type) {
	case nil:
		return 0, ErrMissingValue
	case time.Time:
		return clockOf(x), nil
	case time.Duration:
		return x, nil
	case float64:
		return serialClock(x), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, ErrMissingValue
		}
		if d, ok := numericClock(s); ok {
			return d, nil
		}
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return clockOf(t), nil
			}
		}
		return 0, fmt.Errorf("unrecognized time %q", s)
	default:
		return 0, fmt.Errorf("unsupported time type %T", v)
	}
}

func clockOf(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// serialClock converts the fractional part of an Excel serial to a time of
// day, rounded to the second.
func serialClock(f float64) time.Duration {
	frac := f - math.Floor(f)
	secs := int64(math.Round(frac*86400)) % 86400
	return time.Duration(secs) * time.Second
}

// numericClock handles serial fractions ("0.375") and the HHMM / HHMMSS
// integers some platforms export.
func numericClock(s string) (time.Duration, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if strings.Contains(s, ".") || f < 1 {
		return serialClock(f), true
	}

	n := int64(f)
	var h, m, sec int64
	switch {
	case len(s) <= 4:
		h, m = n/100, n%100
	case len(s) <= 6:
		h, m, sec = n/10000, (n/100)%100, n%100
	default:
		return 0, false
	}
	if h > 23 || m > 59 || sec > 59 {
		return 0, false
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, true
}
