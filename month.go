package tradestats

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/tradestats/date"
)

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month of a date.
func MonthOf(d date.Date) MonthKey { return MonthKey{d.Year(), d.Month()} }

// String returns "{year}-{month}" with no zero padding, e.g. "2024-3".
func (k MonthKey) String() string { return fmt.Sprintf("%d-%d", k.Year, int(k.Month)) }

// Label returns a display name such as "Mar 2024".
func (k MonthKey) Label() string { return fmt.Sprintf("%s %d", k.Month.String()[:3], k.Year) }

// Compare orders months chronologically.
func (k MonthKey) Compare(o MonthKey) int {
	if k.Year != o.Year {
		return k.Year - o.Year
	}
	return int(k.Month) - int(o.Month)
}

// ParseMonthKey reads "2024-3" or "2024-03".
func ParseMonthKey(s string) (MonthKey, error) {
	y, m, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return MonthKey{}, fmt.Errorf("invalid month %q want format YYYY-M", s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("invalid month %q want a month in 1-12", s)
	}
	return MonthKey{year, time.Month(month)}, nil
}

func (k MonthKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *MonthKey) UnmarshalText(text []byte) error {
	v, err := ParseMonthKey(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MonthlyPnL is the P&L summed per month. Months without trading days are
// absent.
type MonthlyPnL map[MonthKey]Money

// Keys returns the months in chronological order.
func (m MonthlyPnL) Keys() []MonthKey {
	keys := make([]MonthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, MonthKey.Compare)
	return keys
}

// Total returns the sum over all months, in the currency of its values.
// An empty MonthlyPnL has no currency.
func (m MonthlyPnL) Total() Money {
	var total Money
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}
