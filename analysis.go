package tradestats

import (
	"errors"

	"github.com/etnz/tradestats/date"
)

// ErrNoTrades is returned when a ledger yields no usable trade.
var ErrNoTrades = errors.New("no usable trades found")

// Totals are the summed amounts of a set of days.
type Totals struct {
	Trades        int   `json:"trades"`
	Gross         Money `json:"grossPnl"`
	Brokerage     Money `json:"brokerage"`
	STT           Money `json:"stt"`
	Transaction   Money `json:"transactionCharge"`
	SEBI          Money `json:"sebiCharge"`
	IPFT          Money `json:"ipftCharge"`
	GST           Money `json:"gst"`
	TotalCost     Money `json:"totalCost"`
	ProfitSharing Money `json:"profitSharing"`
	Net           Money `json:"netPnl"`
}

// Sum adds up the days.
func Sum(days []DailyAggregate) Totals {
	var t Totals
	for _, d := range days {
		t.Trades += d.Trades
		t.Gross = t.Gross.Add(d.Gross)
		t.Brokerage = t.Brokerage.Add(d.Brokerage)
		t.STT = t.STT.Add(d.STT)
		t.Transaction = t.Transaction.Add(d.TransactionCharge)
		t.SEBI = t.SEBI.Add(d.SEBICharge)
		t.IPFT = t.IPFT.Add(d.IPFTCharge)
		t.GST = t.GST.Add(d.GST)
		t.TotalCost = t.TotalCost.Add(d.TotalCost)
		t.ProfitSharing = t.ProfitSharing.Add(d.ProfitSharing)
		t.Net = t.Net.Add(d.Net)
	}
	return t
}

// Taxes returns the charges other than brokerage, never negative.
func (t Totals) Taxes() Money {
	taxes := t.TotalCost.Sub(t.Brokerage)
	if taxes.IsNegative() {
		return M(0, taxes.Currency())
	}
	return taxes
}

// Retention returns the share of gross P&L kept as net P&L, 0 unless the
// gross P&L is positive.
func (t Totals) Retention() Percent { return t.Net.PercentOf(t.Gross) }

// AnalysisResult is the full analysis of a set of days.
//
// Results are never modified after creation; a new filter gives a new
// result.
type AnalysisResult struct {
	Filter  Filter           `json:"-"`
	Mode    PnLMode          `json:"mode"`
	Range   date.Range       `json:"range"`
	Days    []DailyAggregate `json:"days"`
	Monthly MonthlyPnL       `json:"monthly"`
	Totals  Totals           `json:"totals"`
	Stats   Stats            `json:"stats"`
	Entries []StatEntry      `json:"entries"`
}

// Analyze computes the result of days, which must be sorted by date.
func Analyze(days []DailyAggregate, capital Money, mode PnLMode) *AnalysisResult {
	return ApplyFilter(days, Filter{Mode: mode}, capital)
}

// ApplyFilter analyses the days matching f. It does not modify days.
func ApplyFilter(days []DailyAggregate, f Filter, capital Money) *AnalysisResult {
	kept := make([]DailyAggregate, 0, len(days))
	for _, d := range days {
		if f.Match(d) {
			kept = append(kept, d)
		}
	}
	stats := ComputeStats(kept, capital, f.Mode)
	r := &AnalysisResult{
		Filter:  f,
		Mode:    f.Mode,
		Days:    kept,
		Monthly: Monthly(kept, f.Mode),
		Totals:  Sum(kept),
		Stats:   stats,
		Entries: stats.Entries(),
	}
	if len(kept) > 0 {
		r.Range = date.Range{From: kept[0].Date, To: kept[len(kept)-1].Date}
	}
	return r
}

// Capital returns the capital the result was computed with.
func (r *AnalysisResult) Capital() Money { return r.Stats.Capital }
