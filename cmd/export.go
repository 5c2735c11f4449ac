package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/tradestats/renderer"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	ledger ledgerFlags
	output string
	title  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the P&L report as a standalone HTML or markdown file" }
func (*exportCmd) Usage() string {
	return `pnl export -f <ledger> [-o report.html] [filters...]

  Writes the report of the ledger. The format follows the extension of the
  output file: .md for markdown, HTML otherwise. Writes to stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.ledger.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output file, stdout by default.")
	f.StringVar(&c.title, "title", "P&L Report", "Title of the report.")
}

func (c *exportCmd) render(ctx context.Context) (string, error) {
	_, res, err := c.ledger.analyze(ctx)
	if err != nil {
		return "", err
	}
	opts := renderer.Options{Title: c.title}
	if strings.EqualFold(filepath.Ext(c.output), ".md") {
		return renderer.Markdown(res, opts), nil
	}
	return renderer.HTML(res, opts)
}

func (c *exportCmd) run(ctx context.Context, w io.Writer) error {
	out, err := c.render(ctx)
	if err != nil {
		return err
	}
	if c.output == "" {
		_, err = io.WriteString(w, out)
		return err
	}
	if err := os.WriteFile(c.output, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", c.output)
	return nil
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
