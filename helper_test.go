package tradestats

import (
	"testing"

	"github.com/etnz/tradestats/date"
	"github.com/shopspring/decimal"
)

// inr is a test helper to create INR amounts.
func inr(v float64) Money { return M(v, "INR") }

// dec is a test helper to create decimals from strings.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// trade is a test helper to create a trade record.
func trade(on string, amount float64) TradeRecord {
	return TradeRecord{Date: date.MustParse(on), Amount: decimal.NewFromFloat(amount)}
}

// day is a test helper to create a day with only a P&L.
func day(on string, pnl float64) DailyAggregate {
	return DailyAggregate{Date: date.MustParse(on), Gross: inr(pnl), Net: inr(pnl), Trades: 1}
}

// days is a test helper to create consecutive days from a P&L series.
func days(from string, pnls ...float64) []DailyAggregate {
	start := date.MustParse(from)
	res := make([]DailyAggregate, len(pnls))
	for i, p := range pnls {
		res[i] = DailyAggregate{Date: start.Add(i), Gross: inr(p), Net: inr(p), Trades: 1}
	}
	return res
}

func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got.Decimal(), want.Decimal())
	}
}
