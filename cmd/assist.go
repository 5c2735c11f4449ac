package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradestats/assist"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	ledger ledgerFlags
	model  string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant about a ledger"
}
func (*assistCmd) Usage() string {
	return `pnl assist -f <ledger> [-model name] [question...]

  Starts an interactive session with the AI assistant about the ledger.
  The arguments are asked first. Requires GOOGLE_API_KEY (or the Vertex AI
  environment) to reach Gemini.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.ledger.SetFlags(f)
	f.StringVar(&c.model, "model", assist.DefaultModel, "Gemini model.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := c.ledger.session(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := assist.New(os.Stdout, os.Stdin, c.model, session)
	if err := a.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := a.Run(ctx, strings.Join(f.Args(), " ")); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
