package tradestats

import (
	"slices"

	"github.com/etnz/tradestats/date"
)

// Session holds a loaded ledger: its settings, fee schedule and canonical
// daily aggregates.
//
// A Session is immutable and safe for concurrent use. Reloading a ledger
// means building a new Session and dropping the old one.
type Session struct {
	settings Settings
	fees     FeeSchedule
	report   IngestReport
	days     []DailyAggregate
}

// NewSession ingests rows and aggregates them once.
func NewSession(rows []Row, settings Settings, fees FeeSchedule) *Session {
	trades, report := Ingest(rows)
	return &Session{
		settings: settings,
		fees:     fees,
		report:   report,
		days:     Aggregate(trades, fees, settings.BrokeragePerSide, settings.ProfitSharingPct),
	}
}

// Load is NewSession, failing with ErrNoTrades when no row is usable.
func Load(rows []Row, settings Settings, fees FeeSchedule) (*Session, error) {
	s := NewSession(rows, settings, fees)
	if s.report.Trades == 0 {
		return nil, ErrNoTrades
	}
	return s, nil
}

// Settings returns the settings the session was loaded with.
func (s *Session) Settings() Settings { return s.settings }

// Fees returns the fee schedule the session was loaded with.
func (s *Session) Fees() FeeSchedule { return s.fees }

// Report returns what happened to the raw rows.
func (s *Session) Report() IngestReport { return s.report }

// Capital returns the capital as Money.
func (s *Session) Capital() Money { return M(s.settings.Capital, s.fees.Currency) }

// Days returns a copy of the canonical daily aggregates.
func (s *Session) Days() []DailyAggregate { return slices.Clone(s.days) }

// Bounds returns the first and last trading days.
func (s *Session) Bounds() date.Range {
	if len(s.days) == 0 {
		return date.Range{}
	}
	return date.Range{From: s.days[0].Date, To: s.days[len(s.days)-1].Date}
}

// Months returns the months with at least one trading day, in order.
func (s *Session) Months() []MonthKey {
	var months []MonthKey
	for _, d := range s.days {
		k := MonthOf(d.Date)
		if len(months) == 0 || months[len(months)-1] != k {
			months = append(months, k)
		}
	}
	return months
}

// ApplyFilter analyses the days of the session matching f.
func (s *Session) ApplyFilter(f Filter) *AnalysisResult {
	return ApplyFilter(s.days, f, s.Capital())
}

// Unfiltered analyses every day of the session.
func (s *Session) Unfiltered(mode PnLMode) *AnalysisResult {
	return s.ApplyFilter(Filter{Mode: mode})
}
