package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

// queryCmd holds the flags for the 'query' subcommand.
type queryCmd struct {
	ledger ledgerFlags
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "extract values from the analysis with JSONPath" }
func (*queryCmd) Usage() string {
	return `pnl query -f <ledger> [filters...] <jsonpath>...

  Evaluates JSONPath expressions over the JSON analysis of the ledger and
  prints one result per line. Without expression, prints the whole analysis.

Usage Examples:
$ pnl query -f trades.csv '$.stats.totalRoi'
$ pnl query -f trades.csv -mode gross '$.monthly["2024-3"]'
$ pnl query -f trades.csv '$.days[?(@.netPnl < 0)].date'

`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) { c.ledger.SetFlags(f) }

func (c *queryCmd) run(ctx context.Context, w io.Writer, paths []string) error {
	_, res, err := c.ledger.analyze(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode analysis: %w", err)
	}
	if len(paths) == 0 {
		paths = []string{"$"}
	}
	enc := json.NewEncoder(w)
	for _, path := range paths {
		v, err := jsonpath.Get(path, doc)
		if err != nil {
			return fmt.Errorf("error evaluating %q: %w", path, err)
		}
		if s, ok := v.(string); ok {
			fmt.Fprintln(w, s)
			continue
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdout, f.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
