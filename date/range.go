package date

import "fmt"

// Range represents an inclusive range of dates.
//
// A zero From or To leaves that side of the range open, so the zero Range
// contains every date.
type Range struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// NewRange returns the range between two dates, swapping them if needed.
func NewRange(from, to Date) Range {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// Unbounded reports whether the range has no bounds at all.
func (r Range) Unbounded() bool { return r.From.IsZero() && r.To.IsZero() }

// Days returns the number of days in the range, boundaries included.
// It returns 0 for open ranges.
func (r Range) Days() int {
	if r.From.IsZero() || r.To.IsZero() {
		return 0
	}
	return int(r.To.time().Sub(r.From.time()).Hours()/24) + 1
}

func (r Range) String() string {
	switch {
	case r.Unbounded():
		return "all dates"
	case r.From.IsZero():
		return fmt.Sprintf("until %s", r.To)
	case r.To.IsZero():
		return fmt.Sprintf("from %s", r.From)
	case r.From == r.To:
		return r.From.String()
	default:
		return fmt.Sprintf("%s to %s", r.From, r.To)
	}
}
