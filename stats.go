package tradestats

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PnLMode selects which daily P&L the statistics are computed on.
type PnLMode int

const (
	Net PnLMode = iota
	Gross
)

func (m PnLMode) String() string {
	if m == Gross {
		return "gross"
	}
	return "net"
}

// ParsePnLMode reads "net" or "gross"; the empty string is Net.
func ParsePnLMode(s string) (PnLMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "net":
		return Net, nil
	case "gross":
		return Gross, nil
	default:
		return Net, fmt.Errorf("unknown P&L mode %q want net or gross", s)
	}
}

func (m PnLMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *PnLMode) UnmarshalText(text []byte) error {
	v, err := ParsePnLMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Stats are the performance statistics of a set of days.
type Stats struct {
	Mode    PnLMode `json:"mode"`
	Capital Money   `json:"capital"`

	TradingDays int     `json:"tradingDays"`
	WinDays     int     `json:"winDays"`
	LossDays    int     `json:"lossDays"`
	WinDaysPct  Percent `json:"winDaysPct"`
	LossDaysPct Percent `json:"lossDaysPct"`

	Total        Money `json:"total"`
	AvgDaily     Money `json:"avgDaily"`
	AvgWinDay    Money `json:"avgWinDay"`
	AvgLossDay   Money `json:"avgLossDay"`
	MaxProfitDay Money `json:"maxProfitDay"`
	MaxLossDay   Money `json:"maxLossDay"`

	AvgMonthlyProfit Money   `json:"avgMonthlyProfit"`
	TotalROI         Percent `json:"totalRoi"`
	AvgMonthlyROI    Percent `json:"avgMonthlyRoi"`

	TotalTrades        int             `json:"totalTrades"`
	AvgTradesPerDay    decimal.Decimal `json:"avgTradesPerDay"`
	AvgBrokeragePerDay Money           `json:"avgBrokeragePerDay"`
	TotalCost          Money           `json:"totalCost"`
	Expectancy         Money           `json:"expectancy"`

	MaxDrawdown    Money   `json:"maxDrawdown"`
	MaxDrawdownPct Percent `json:"maxDrawdownPct"`
	MaxWinStreak   int     `json:"maxWinStreak"`
	MaxLossStreak  int     `json:"maxLossStreak"`
}

// ComputeStats derives the statistics of days, which must be sorted by
// date. Empty input and a non positive capital give zero values, never an
// error.
func ComputeStats(days []DailyAggregate, capital Money, mode PnLMode) Stats {
	s := Stats{Mode: mode, Capital: capital, TradingDays: len(days)}
	zero := capital.Sub(capital)
	s.Total, s.MaxProfitDay, s.MaxLossDay, s.TotalCost = zero, zero, zero, zero

	wins, losses, brokerage := zero, zero, zero
	for _, d := range days {
		pnl := d.PnL(mode)
		s.Total = s.Total.Add(pnl)
		s.TotalTrades += d.Trades
		s.TotalCost = s.TotalCost.Add(d.TotalCost)
		brokerage = brokerage.Add(d.Brokerage)
		s.MaxProfitDay = s.MaxProfitDay.Max(pnl)
		s.MaxLossDay = s.MaxLossDay.Min(pnl)
		switch {
		case pnl.IsPositive():
			s.WinDays++
			wins = wins.Add(pnl)
		case pnl.IsNegative():
			s.LossDays++
			losses = losses.Add(pnl)
		}
	}

	s.WinDaysPct = countPercent(s.WinDays, s.TradingDays)
	s.LossDaysPct = countPercent(s.LossDays, s.TradingDays)
	s.AvgDaily = s.Total.DivInt(s.TradingDays)
	s.AvgWinDay = wins.DivInt(s.WinDays)
	s.AvgLossDay = losses.DivInt(s.LossDays)
	s.AvgTradesPerDay = ratio(decimal.NewFromInt(int64(s.TotalTrades)), decimal.NewFromInt(int64(s.TradingDays)))
	s.AvgBrokeragePerDay = brokerage.DivInt(s.TradingDays)
	s.Expectancy = s.Total.DivInt(s.TotalTrades)

	monthly := Monthly(days, mode)
	s.AvgMonthlyProfit = zero.Add(monthly.Total()).DivInt(len(monthly))
	s.TotalROI = s.Total.PercentOf(capital)
	s.AvgMonthlyROI = s.AvgMonthlyProfit.PercentOf(capital)

	s.MaxDrawdown = zero.Add(MaxDrawdown(days, mode))
	s.MaxDrawdownPct = s.MaxDrawdown.PercentOf(capital)
	s.MaxWinStreak, s.MaxLossStreak = Streaks(days, mode)
	return s
}

func countPercent(n, total int) Percent {
	if total == 0 {
		return 0
	}
	return Percent(float64(n) / float64(total) * 100)
}

// Monthly sums the P&L of days per calendar month.
func Monthly(days []DailyAggregate, mode PnLMode) MonthlyPnL {
	m := make(MonthlyPnL)
	for _, d := range days {
		k := MonthOf(d.Date)
		m[k] = m[k].Add(d.PnL(mode))
	}
	return m
}

// MaxDrawdown returns the largest fall of the cumulative P&L from its
// running peak. The peak starts at zero, so an initial loss is a drawdown.
func MaxDrawdown(days []DailyAggregate, mode PnLMode) Money {
	if len(days) == 0 {
		return Money{}
	}
	zero := M(0, days[0].PnL(mode).Currency())
	peak, cumulative, worst := zero, zero, zero
	for _, d := range days {
		cumulative = cumulative.Add(d.PnL(mode))
		peak = peak.Max(cumulative)
		worst = worst.Max(peak.Sub(cumulative))
	}
	return worst
}

// Streaks returns the longest runs of consecutive winning and losing days.
// A flat day ends both runs.
func Streaks(days []DailyAggregate, mode PnLMode) (win, loss int) {
	var curWin, curLoss int
	for _, d := range days {
		switch d.PnL(mode).Sign() {
		case 1:
			curWin++
			curLoss = 0
			win = max(win, curWin)
		case -1:
			curLoss++
			curWin = 0
			loss = max(loss, curLoss)
		default:
			curWin, curLoss = 0, 0
		}
	}
	return win, loss
}

// StatEntry is one named, formatted statistic.
type StatEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Entries returns the statistics as a named list, in display order.
func (s Stats) Entries() []StatEntry {
	return []StatEntry{
		{"Capital Required", s.Capital.Whole()},
		{"Total Trading Days", fmt.Sprint(s.TradingDays)},
		{"Win Days", fmt.Sprintf("%d (%s)", s.WinDays, s.WinDaysPct)},
		{"Loss Days", fmt.Sprintf("%d (%s)", s.LossDays, s.LossDaysPct)},
		{"Avg Monthly Profit", s.AvgMonthlyProfit.Whole()},
		{"Total Profit", s.Total.Whole()},
		{"Avg Monthly ROI", s.AvgMonthlyROI.String()},
		{"Total ROI", s.TotalROI.String()},
		{"Max Profit in a Day", s.MaxProfitDay.Whole()},
		{"Max Loss in a Day", s.MaxLossDay.Whole()},
		{"Avg Profit/Loss Daily", s.AvgDaily.Whole()},
		{"Avg Profit on Profit Days", s.AvgWinDay.Whole()},
		{"Avg Loss on Loss Days", s.AvgLossDay.Whole()},
		{"Avg Trades (Buy + Sell) per Day", fmt.Sprintf("%s (%s Brokerage)", s.AvgTradesPerDay.StringFixed(2), s.AvgBrokeragePerDay.Whole())},
		{"Total Trading Cost", s.TotalCost.Whole()},
		{"Max Drawdown", fmt.Sprintf("%s (%s)", s.MaxDrawdown.Whole(), s.MaxDrawdownPct)},
		{"Max Winning Streak", fmt.Sprintf("%d Days", s.MaxWinStreak)},
		{"Max Losing Streak", fmt.Sprintf("%d Days", s.MaxLossStreak)},
		{"Expectancy", s.Expectancy.String()},
	}
}
