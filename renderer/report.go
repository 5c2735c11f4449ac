// Package renderer turns analysis results into markdown reports, HTML
// pages and chart data.
package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/tradestats"
	md "github.com/nao1215/markdown"
)

// Options control what a report contains.
type Options struct {
	Title        string // report title, "P&L Report" when empty.
	MaxDailyRows int    // limit of the daily summary rows, 0 for all.
}

// Markdown renders the full report of r.
func Markdown(r *tradestats.AnalysisResult, opts Options) string {
	title := opts.Title
	if title == "" {
		title = "P&L Report"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Period"), md.Bold(periodOf(r))},
		Rows: [][]string{
			{"P&L", r.Mode.String()},
			{"Trading Days", fmt.Sprint(len(r.Days))},
		},
	})

	sections := []string{doc.String(), SummaryMarkdown(r), TaxMarkdown(r), StatsMarkdown(r)}
	if len(r.Days) > 0 {
		sections = append(sections, WeekdayMarkdown(r), HeatmapMarkdown(r), DailyMarkdown(r, opts.MaxDailyRows))
	}
	return strings.Join(sections, "\n")
}

func periodOf(r *tradestats.AnalysisResult) string {
	if len(r.Days) == 0 {
		return "no trading day"
	}
	return r.Range.String()
}

// ofCapital formats v as a percentage of the capital, or "-" without
// capital.
func ofCapital(v tradestats.Money, capital tradestats.Money) string {
	if !capital.IsPositive() {
		return "-"
	}
	return v.PercentOf(capital).String()
}

// SummaryMarkdown renders the summary cards: gross to net.
func SummaryMarkdown(r *tradestats.AnalysisResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	t, capital := r.Totals, r.Capital()
	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"", "Amount", "% of Capital"},
		Rows: [][]string{
			{"Gross P&L", t.Gross.Whole(), ofCapital(t.Gross, capital)},
			{fmt.Sprintf("Brokerage (%d trades)", t.Trades), t.Brokerage.Whole(), ofCapital(t.Brokerage, capital)},
			{"Taxes & Charges", t.Taxes().Whole(), ofCapital(t.Taxes(), capital)},
			{"Total Charges", t.TotalCost.Whole(), ofCapital(t.TotalCost, capital)},
			{"Profit Sharing", t.ProfitSharing.Whole(), ofCapital(t.ProfitSharing, capital)},
			{md.Bold("Net P&L"), md.Bold(t.Net.Whole()), ofCapital(t.Net, capital)},
			{"Gross to Net (Retention Rate)", t.Retention().String(), ""},
		},
	})
	return doc.String()
}

// TaxMarkdown renders the breakdown of the charges.
func TaxMarkdown(r *tradestats.AnalysisResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	t, capital := r.Totals, r.Capital()
	charges := []struct {
		label string
		value tradestats.Money
	}{
		{"Brokerage", t.Brokerage},
		{"STT", t.STT},
		{"Transaction", t.Transaction},
		{"SEBI", t.SEBI},
		{"IPFT", t.IPFT},
		{"GST", t.GST},
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Charge", "Amount", "% of Capital"},
	}
	var total tradestats.Money
	for _, c := range charges {
		total = total.Add(c.value)
		table.Rows = append(table.Rows, []string{c.label, c.value.String(), ofCapital(c.value, capital)})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(total.String()), ofCapital(total, capital)})
	doc.H2("Tax Breakdown")
	doc.Table(table)
	return doc.String()
}

// StatsMarkdown renders the named statistics.
func StatsMarkdown(r *tradestats.AnalysisResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Statistic", "Value"},
	}
	for _, e := range r.Entries {
		table.Rows = append(table.Rows, []string{e.Name, e.Value})
	}
	doc.H2(fmt.Sprintf("Statistics (%s)", r.Mode))
	doc.Table(table)
	return doc.String()
}

// WeekdayMarkdown renders the P&L per year and weekday.
func WeekdayMarkdown(r *tradestats.AnalysisResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	b := tradestats.BreakupByWeekday(r.Days, r.Mode)
	capital := r.Capital()

	table := md.TableSet{Header: []string{"Year"}, Alignment: []md.TableAlignment{md.AlignLeft}}
	for _, w := range b.Columns {
		table.Header = append(table.Header, w.String()[:3])
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	table.Header = append(table.Header, "Total")
	table.Alignment = append(table.Alignment, md.AlignRight)

	row := func(label string, y tradestats.WeekdayRow) []string {
		cells := []string{label}
		for _, w := range b.Columns {
			cells = append(cells, cell(y.Weekdays[w], capital))
		}
		return append(cells, cell(y.Total, capital))
	}
	for _, y := range b.Rows {
		table.Rows = append(table.Rows, row(fmt.Sprint(y.Year), y))
	}
	table.Rows = append(table.Rows, row(md.Bold("Total"), b.Totals))

	doc.H2("Day-wise Breakup")
	doc.Table(table)
	return doc.String()
}

// cell formats an amount with its percentage of capital when there is one.
func cell(v, capital tradestats.Money) string {
	if !capital.IsPositive() {
		return v.Whole()
	}
	return fmt.Sprintf("%s (%s)", v.Whole(), v.PercentOf(capital))
}

// HeatmapMarkdown renders the P&L per year and month.
func HeatmapMarkdown(r *tradestats.AnalysisResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	capital := r.Capital()

	table := md.TableSet{Header: []string{"Year"}, Alignment: []md.TableAlignment{md.AlignLeft}}
	for m := time.January; m <= time.December; m++ {
		table.Header = append(table.Header, m.String()[:3])
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	table.Header = append(table.Header, "Total")
	table.Alignment = append(table.Alignment, md.AlignRight)

	for _, row := range tradestats.MonthlyHeatmap(r.Monthly) {
		cells := []string{fmt.Sprint(row.Year)}
		for i, v := range row.Months {
			if !row.Traded[i] {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, cell(v, capital))
		}
		cells = append(cells, md.Bold(cell(row.Total, capital)))
		table.Rows = append(table.Rows, cells)
	}
	doc.H2("Monthly P&L")
	doc.Table(table)
	return doc.String()
}
