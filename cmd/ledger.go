package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/tradestats"
	"github.com/etnz/tradestats/logger"
	"github.com/etnz/tradestats/sheet"
)

// ledgerFlags are the flags selecting a ledger, its settings and a filter,
// shared by the analysis subcommands.
type ledgerFlags struct {
	file          string
	capital       float64
	brokerage     float64
	profitSharing float64
	fees          string

	from, to string
	days     string
	months   string
	mode     string
}

func (l *ledgerFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&l.file, "f", "", "Ledger file (.csv or .xlsx) with 'Entry Date' and 'Amount' columns.")
	f.Float64Var(&l.capital, "capital", 100000, "Capital required, base of the ROI and drawdown percentages.")
	f.Float64Var(&l.brokerage, "brokerage", 20, "Brokerage per side, charged on every trade.")
	f.Float64Var(&l.profitSharing, "profit-sharing", 0, "Profit sharing in percent of the gross P&L.")
	f.StringVar(&l.fees, "fees", "", "YAML fee schedule overriding the default statutory rates.")
	f.StringVar(&l.from, "from", "", "First day included (YYYY-MM-DD).")
	f.StringVar(&l.to, "to", "", "Last day included (YYYY-MM-DD).")
	f.StringVar(&l.days, "days", "", "Comma separated weekdays to keep, e.g. Mon,Fri. All by default.")
	f.StringVar(&l.months, "months", "", "Comma separated months to keep, e.g. 2024-1,2024-2. All by default.")
	f.StringVar(&l.mode, "mode", "net", "P&L the statistics are computed on: net or gross.")
}

func split(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// filter returns the filter selected by the flags.
func (l *ledgerFlags) filter() (tradestats.Filter, error) {
	return tradestats.ParseFilter(l.from, l.to, split(l.days), split(l.months), l.mode)
}

// session loads the ledger.
func (l *ledgerFlags) session(ctx context.Context) (*tradestats.Session, error) {
	if l.file == "" {
		return nil, fmt.Errorf("missing ledger file, use -f")
	}
	fees := tradestats.DefaultFees()
	if l.fees != "" {
		var err error
		if fees, err = tradestats.LoadFees(l.fees); err != nil {
			return nil, err
		}
	}
	op := logger.StartOperation(ctx, "load_ledger", "file", l.file)
	rows, err := sheet.ReadFile(l.file)
	if err != nil {
		op.EndWithError(err)
		return nil, err
	}
	s, err := tradestats.Load(rows, tradestats.NewSettings(l.capital, l.brokerage, l.profitSharing), fees)
	if err != nil {
		op.EndWithError(err)
		return nil, fmt.Errorf("%s: %w", l.file, err)
	}
	op.End("report", s.Report().String())
	return s, nil
}

// analyze loads the ledger and applies the filter.
func (l *ledgerFlags) analyze(ctx context.Context) (*tradestats.Session, *tradestats.AnalysisResult, error) {
	f, err := l.filter()
	if err != nil {
		return nil, nil, err
	}
	s, err := l.session(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s, s.ApplyFilter(f), nil
}
