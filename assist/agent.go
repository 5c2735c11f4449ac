// Package assist chats with Gemini models about a loaded ledger.
package assist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/tradestats"
	"github.com/etnz/tradestats/renderer"
	"google.golang.org/genai"
)

// Agent is the assistant handling the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
}

// New creates an Agent talking about session, reading the user's questions
// from r and writing answers to w.
func New(w io.Writer, r io.Reader, model string, session *tradestats.Session) *Agent {
	if model == "" {
		model = DefaultModel
	}
	experts := []*Expert{NewAnalyst(model, session), NewMarkets(model)}
	report := renderer.Markdown(session.Unfiltered(tradestats.Net), renderer.Options{})
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, report, experts...),
	}
}

// Start opens the chats of every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run answers the prompts, then the user's questions until "bye" or the end
// of the input. The chats must be started.
func (a *Agent) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(a.w, "Ask about your trading results. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.w, prompt)
		var input string
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			input = strings.TrimSpace(input)
		}
		if input == "bye" {
			return nil
		}
		if input == "" {
			continue
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, text(content))
	}
}
