package tradestats

import (
	"slices"
	"time"

	"github.com/etnz/tradestats/date"
)

// TradingWeek lists the weekdays always shown in weekday breakups.
var TradingWeek = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// WeekdayRow is the P&L of one year split by weekday.
type WeekdayRow struct {
	Year     int
	Weekdays map[time.Weekday]Money
	Total    Money
}

// WeekdayBreakup is the P&L split by year and weekday.
type WeekdayBreakup struct {
	Columns []time.Weekday // Monday to Friday, plus weekend days that traded.
	Rows    []WeekdayRow   // by ascending year.
	Totals  WeekdayRow     // Year is 0.
}

// BreakupByWeekday sums the P&L of days per year and weekday.
func BreakupByWeekday(days []DailyAggregate, mode PnLMode) WeekdayBreakup {
	b := WeekdayBreakup{Columns: slices.Clone(TradingWeek)}
	b.Totals.Weekdays = make(map[time.Weekday]Money)
	rows := make(map[int]*WeekdayRow)
	for _, d := range days {
		y, w, pnl := d.Date.Year(), d.Date.Weekday(), d.PnL(mode)
		row, ok := rows[y]
		if !ok {
			row = &WeekdayRow{Year: y, Weekdays: make(map[time.Weekday]Money)}
			rows[y] = row
		}
		row.Weekdays[w] = row.Weekdays[w].Add(pnl)
		row.Total = row.Total.Add(pnl)
		b.Totals.Weekdays[w] = b.Totals.Weekdays[w].Add(pnl)
		b.Totals.Total = b.Totals.Total.Add(pnl)
		if !slices.Contains(b.Columns, w) {
			b.Columns = append(b.Columns, w)
		}
	}
	// keep the week in trading order: Monday first, Sunday last
	slices.SortFunc(b.Columns, func(a, b time.Weekday) int { return isoWeekday(a) - isoWeekday(b) })
	for _, r := range rows {
		b.Rows = append(b.Rows, *r)
	}
	slices.SortFunc(b.Rows, func(a, b WeekdayRow) int { return a.Year - b.Year })
	return b
}

func isoWeekday(w time.Weekday) int {
	if w == time.Sunday {
		return 7
	}
	return int(w)
}

// HeatmapRow is the P&L of one year split by calendar month.
type HeatmapRow struct {
	Year   int
	Months [12]Money
	Traded [12]bool // false for months without any trading day.
	Total  Money
}

// MonthlyHeatmap lays the monthly P&L out as one row per year.
func MonthlyHeatmap(monthly MonthlyPnL) []HeatmapRow {
	rows := make(map[int]*HeatmapRow)
	for k, v := range monthly {
		row, ok := rows[k.Year]
		if !ok {
			row = &HeatmapRow{Year: k.Year}
			rows[k.Year] = row
		}
		row.Months[k.Month-1] = v
		row.Traded[k.Month-1] = true
		row.Total = row.Total.Add(v)
	}
	res := make([]HeatmapRow, 0, len(rows))
	for _, r := range rows {
		res = append(res, *r)
	}
	slices.SortFunc(res, func(a, b HeatmapRow) int { return a.Year - b.Year })
	return res
}

// DailySummaryRow is one line of the daily summary table.
type DailySummaryRow struct {
	Date          date.Date
	Weekday       time.Weekday
	Gross         Money
	Brokerage     Money
	OtherCharges  Money
	TotalCost     Money
	ProfitSharing Money
	Deductions    Money   // total cost plus profit sharing.
	DeductionPct  Percent // deductions over |gross|, 0 on a flat day.
	Net           Money
	Trades        int
}

// DailySummary returns one row per day, most recent first.
func DailySummary(days []DailyAggregate) []DailySummaryRow {
	rows := make([]DailySummaryRow, 0, len(days))
	for _, d := range days {
		deductions := d.TotalCost.Add(d.ProfitSharing)
		rows = append(rows, DailySummaryRow{
			Date:          d.Date,
			Weekday:       d.Date.Weekday(),
			Gross:         d.Gross,
			Brokerage:     d.Brokerage,
			OtherCharges:  d.OtherCharges(),
			TotalCost:     d.TotalCost,
			ProfitSharing: d.ProfitSharing,
			Deductions:    deductions,
			DeductionPct:  deductions.PercentOf(d.Gross.Abs()),
			Net:           d.Net,
			Trades:        d.Trades,
		})
	}
	slices.SortFunc(rows, func(a, b DailySummaryRow) int { return b.Date.Compare(a.Date) })
	return rows
}
