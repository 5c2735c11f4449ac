package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/tradestats/renderer"
	"github.com/google/subcommands"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	ledger ledgerFlags
	daily  int
	raw    bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "display the P&L report of a ledger" }
func (*analyzeCmd) Usage() string {
	return `pnl analyze -f <ledger> [-capital N] [-brokerage N] [-profit-sharing N] [-from D] [-to D] [-days Mon,Fri] [-months 2024-1] [-mode net|gross]

  Displays the P&L report of the ledger: summary, charges, statistics,
  weekday breakup, monthly heatmap and the daily summary.

Usage Examples:
# Monday and Friday of the first quarter, before charges.
$ pnl analyze -f trades.csv -from 2024-01-01 -to 2024-03-31 -days Mon,Fri -mode gross

`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	c.ledger.SetFlags(f)
	f.IntVar(&c.daily, "daily", 30, "Number of days in the daily summary, 0 for all.")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
}

func (c *analyzeCmd) run(ctx context.Context, w io.Writer) error {
	s, res, err := c.ledger.analyze(ctx)
	if err != nil {
		return err
	}
	md := renderer.Markdown(res, renderer.Options{MaxDailyRows: c.daily})
	if dropped := s.Report().Dropped(); dropped > 0 {
		md += fmt.Sprintf("\n_%s_\n", s.Report())
	}
	return printMarkdown(w, md, c.raw)
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
