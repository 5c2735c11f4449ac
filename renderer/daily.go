package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradestats"
	md "github.com/nao1215/markdown"
)

// DailyMarkdown renders the daily summary, most recent day first. A
// positive limit keeps only that many days.
func DailyMarkdown(r *tradestats.AnalysisResult, limit int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	rows := tradestats.DailySummary(r.Days)
	title := "Daily Summary"
	if limit > 0 && len(rows) > limit {
		title = fmt.Sprintf("Daily Summary (last %d of %d days)", limit, len(rows))
		rows = rows[:limit]
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{
			"Date", "Day", "Gross P&L", "Brokerage", "Other Charges", "Total Cost",
			"Profit Sharing", "Deductions", "Net P&L", "Trades",
		},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Date.String(),
			row.Weekday.String()[:3],
			row.Gross.String(),
			row.Brokerage.String(),
			row.OtherCharges.String(),
			row.TotalCost.String(),
			row.ProfitSharing.String(),
			row.DeductionPct.String(),
			md.Bold(row.Net.String()),
			fmt.Sprint(row.Trades),
		})
	}
	doc.H2(title)
	doc.Table(table)
	return doc.String()
}
