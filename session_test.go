package tradestats

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/tradestats/date"
)

func testRows() []Row {
	return []Row{
		{"Entry Date": "15-Jan-24", "Amount": "-1,000"},
		{"Entry Date": "15-Jan-24", "Amount": "400"},
		{"Entry Date": "2024-01-16", "Amount": "250"},
		{"Entry Date": "2024-02-01", "Amount": "-700"},
		{"Entry Date": "", "Amount": ""},
	}
}

func TestSession(t *testing.T) {
	s, err := Load(testRows(), NewSettings(100000, 20, 0), DefaultFees())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Report().Trades != 4 || s.Report().Blank != 1 {
		t.Errorf("Report() = %+v, want 4 trades and 1 blank row", s.Report())
	}
	if got := s.Bounds(); got.From != date.New(2024, 1, 15) || got.To != date.New(2024, 2, 1) {
		t.Errorf("Bounds() = %v, want 2024-01-15 to 2024-02-01", got)
	}
	months := s.Months()
	if len(months) != 2 || months[0] != (MonthKey{2024, time.January}) || months[1] != (MonthKey{2024, time.February}) {
		t.Errorf("Months() = %v, want [2024-1 2024-2]", months)
	}

	all := s.Unfiltered(Gross)
	// gross: 1000 - 400 - 250 + 700
	assertMoney(t, "Total", all.Stats.Total, inr(1050))
	if len(all.Days) != 3 {
		t.Errorf("Unfiltered() has %d days, want 3", len(all.Days))
	}

	jan := s.ApplyFilter(Filter{Months: Select(MonthKey{2024, time.January}), Mode: Gross})
	assertMoney(t, "January total", jan.Stats.Total, inr(350))

	// the session is not affected by filtering
	days := s.Days()
	days[0].Gross = inr(0)
	assertMoney(t, "canonical gross", s.Days()[0].Gross, inr(600))
}

func TestLoadNoTrades(t *testing.T) {
	_, err := Load([]Row{{"Entry Date": "nope", "Amount": "1"}, {}}, NewSettings(1, 0, 0), DefaultFees())
	if !errors.Is(err, ErrNoTrades) {
		t.Errorf("Load() error = %v, want ErrNoTrades", err)
	}

	s := NewSession(nil, NewSettings(1000, 20, 0), DefaultFees())
	r := s.Unfiltered(Net)
	if len(r.Days) != 0 || r.Stats.TradingDays != 0 || !r.Stats.Total.IsZero() {
		t.Errorf("empty session should give an empty result, got %+v", r.Stats)
	}
	if !s.Bounds().Unbounded() || len(s.Months()) != 0 {
		t.Errorf("empty session bounds = %v, months = %v", s.Bounds(), s.Months())
	}
}
