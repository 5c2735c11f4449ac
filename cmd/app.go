// Package cmd implements the pnl command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Commands lists the application's subcommands.
var Commands = []subcommands.Command{
	&analyzeCmd{},
	&exportCmd{},
	&queryCmd{},
	&assistCmd{},
	&serveCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// Complete runs shell completion when the shell asks for it, and exits.
// Install it with COMP_INSTALL=1 name.
func Complete(name string) {
	root := &complete.Command{Sub: make(map[string]*complete.Command)}
	for _, c := range Commands {
		root.Sub[c.Name()] = completion(c)
	}
	root.Complete(name)
}

// predictors for flags whose values can be guessed.
var predictors = map[string]complete.Predictor{
	"f":    predict.Files("*"),
	"fees": predict.Files("*.yaml"),
	"o":    predict.Files("*"),
	"mode": predict.Set{"net", "gross"},
	"days": predict.Set{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
}

// completion describes the flags of c.
func completion(c subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	cc := &complete.Command{Flags: make(map[string]complete.Predictor)}
	fs.VisitAll(func(f *flag.Flag) {
		p, ok := predictors[f.Name]
		if !ok {
			p = predict.Something
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			p = predict.Nothing
		}
		cc.Flags[f.Name] = p
	})
	return cc
}

// printMarkdown writes md to w, rendered for the terminal unless raw.
func printMarkdown(w io.Writer, md string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
