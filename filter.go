package tradestats

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/tradestats/date"
)

// Selection is either "All" or a set of specific items.
//
// The two are mutually exclusive: picking an item leaves All, removing the
// last picked item returns to All. A Selection is a value, every change
// returns a new one.
type Selection[T comparable] struct {
	picked []T
}

// Select returns a Selection of the given items, All if there are none.
func Select[T comparable](items ...T) Selection[T] {
	var s Selection[T]
	for _, v := range items {
		if !slices.Contains(s.picked, v) {
			s.picked = append(s.picked, v)
		}
	}
	return s
}

// All reports whether no specific item is selected.
func (s Selection[T]) All() bool { return len(s.picked) == 0 }

// Items returns the specific items, nil for All.
func (s Selection[T]) Items() []T { return slices.Clone(s.picked) }

// Contains reports whether v passes the selection.
func (s Selection[T]) Contains(v T) bool { return s.All() || slices.Contains(s.picked, v) }

// Toggle picks v, or unpicks it if it was already picked.
func (s Selection[T]) Toggle(v T) Selection[T] {
	if i := slices.Index(s.picked, v); i >= 0 {
		return Selection[T]{picked: slices.Delete(slices.Clone(s.picked), i, i+1)}
	}
	return Selection[T]{picked: append(slices.Clone(s.picked), v)}
}

// SelectAll returns the All selection.
func (s Selection[T]) SelectAll() Selection[T] { return Selection[T]{} }

// Filter selects a subset of trading days and the P&L to analyse.
//
// The zero Filter keeps every day and analyses net P&L.
type Filter struct {
	Range    date.Range
	Weekdays Selection[time.Weekday]
	Months   Selection[MonthKey]
	Mode     PnLMode
}

// Match reports whether the day passes the filter.
func (f Filter) Match(d DailyAggregate) bool {
	return f.Range.Contains(d.Date) &&
		f.Weekdays.Contains(d.Date.Weekday()) &&
		f.Months.Contains(MonthOf(d.Date))
}

func (f Filter) String() string {
	var parts []string
	parts = append(parts, f.Range.String())
	if !f.Weekdays.All() {
		var names []string
		for _, w := range f.Weekdays.Items() {
			names = append(names, w.String()[:3])
		}
		parts = append(parts, strings.Join(names, ","))
	}
	if !f.Months.All() {
		var names []string
		for _, m := range f.Months.Items() {
			names = append(names, m.Label())
		}
		parts = append(parts, strings.Join(names, ","))
	}
	parts = append(parts, f.Mode.String())
	return strings.Join(parts, ", ")
}

// ParseWeekday reads a weekday name or its three letter abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for w := time.Sunday; w <= time.Saturday; w++ {
		name := strings.ToLower(w.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return w, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// ParseFilter builds a Filter from its textual form: ISO dates (empty for
// an open bound), weekday names, "YYYY-M" months and "net" or "gross".
func ParseFilter(from, to string, weekdays, months []string, mode string) (Filter, error) {
	var f Filter
	var err error
	var r date.Range
	if from = strings.TrimSpace(from); from != "" {
		if r.From, err = date.Parse(from); err != nil {
			return f, err
		}
	}
	if to = strings.TrimSpace(to); to != "" {
		if r.To, err = date.Parse(to); err != nil {
			return f, err
		}
	}
	f.Range = date.NewRange(r.From, r.To)
	var days []time.Weekday
	for _, s := range weekdays {
		if strings.TrimSpace(s) == "" {
			continue
		}
		w, err := ParseWeekday(s)
		if err != nil {
			return f, err
		}
		days = append(days, w)
	}
	f.Weekdays = Select(days...)
	var keys []MonthKey
	for _, s := range months {
		if strings.TrimSpace(s) == "" {
			continue
		}
		m, err := ParseMonthKey(s)
		if err != nil {
			return f, err
		}
		keys = append(keys, m)
	}
	f.Months = Select(keys...)
	if f.Mode, err = ParsePnLMode(mode); err != nil {
		return f, err
	}
	return f, nil
}
