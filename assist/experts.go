package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/tradestats"
	"github.com/etnz/tradestats/docs"
	"github.com/etnz/tradestats/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used by the experts.
const DefaultModel = "gemini-2.5-pro"

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// newFacilitator creates the expert talking to the user. It knows the
// unfiltered report and can ask the other experts.
func newFacilitator(model, report string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			You are in charge of the conversation about the user's intraday trading results.
			The experts available as Tools keep the context of your previous questions.

			Answer with figures taken from the reports, never invent them. Amounts are in the
			ledger currency, "net" P&L is after charges and profit sharing, "gross" before.
			Devise a plan of questions to the experts when the user asks about a subset of
			days (dates, weekdays, months) or about charges.

			Here is the unfiltered report of the user's ledger:

			` + report + `

			Here is how the figures are defined:

			` + must(docs.GetTopics("charges", "statistics"))),
		},
		Library: NewLibrary(experts),
	}
}

// NewMarkets creates an expert on markets and trading charges, grounded by
// Google Search.
func NewMarkets(model string) *Expert {
	return &Expert{
		Name: "Markets",
		Description: `Expert of equity markets, brokers and regulatory charges (STT, SEBI fees, GST, stamp duty).
		Ask Markets for recent or grounding information that is not in the user's ledger.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
			SystemInstruction: instruction(`You are an expert of equity markets and trading charges. Leverage Google Search to ground your assertions.`),
		},
	}
}

// NewAnalyst creates the expert computing figures on the user's ledger.
func NewAnalyst(model string, session *tradestats.Session) *Expert {
	lib := AnalystFunctions(session)
	return &Expert{
		Name: "Analyst",
		Description: `Analyst of the user's trading ledger. It computes reports, statistics and daily
		summaries on any subset of days: a date range, some weekdays, some months, net or gross P&L.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{FunctionDeclarations: NewDeclaration(lib)}},
			SystemInstruction: instruction(`
			You analyse the user's intraday trading ledger with the Tools.
			Pardon approximate language: "mondays" is the weekday Monday, "last month" is a month key.
			Always call a Tool to get figures.`),
		},
		Library: NewLibrary(lib),
	}
}

// filterSchema are the parameters shared by the analyst's functions.
func filterSchema(extra map[string]*genai.Schema) *genai.Schema {
	props := map[string]*genai.Schema{
		"from": {Type: genai.TypeString, Description: "First day included, YYYY-MM-DD. Empty for no bound.\n\n" + must(docs.GetTopic("filters"))},
		"to":   {Type: genai.TypeString, Description: "Last day included, YYYY-MM-DD. Empty for no bound."},
		"weekdays": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Weekdays to keep, e.g. Monday or Mon. Empty for all days.",
		},
		"months": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Months to keep as YEAR-MONTH, e.g. 2024-3. Empty for all months.",
		},
		"mode": {Type: genai.TypeString, Enum: []string{"net", "gross"}, Description: "P&L used by the statistics, net by default."},
	}
	for k, v := range extra {
		props[k] = v
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: props}
}

// filterOf reads a filter from function call arguments.
func filterOf(args map[string]any) (tradestats.Filter, error) {
	str := func(k string) string { s, _ := args[k].(string); return s }
	list := func(k string) []string {
		var out []string
		switch v := args[k].(type) {
		case []any:
			for _, e := range v {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
		case []string:
			out = v
		case string:
			out = strings.Split(v, ",")
		}
		return out
	}
	return tradestats.ParseFilter(str("from"), str("to"), list("weekdays"), list("months"), str("mode"))
}

// AnalystFunctions returns the tools computing figures on session.
func AnalystFunctions(session *tradestats.Session) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Report",
				Description: "Markdown report (summary, charges, statistics, weekday breakup, monthly heatmap) of the days matching the filter.",
				Parameters:  filterSchema(nil),
				Response:    &genai.Schema{Type: genai.TypeString, Description: "The markdown report."},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				f, err := filterOf(args)
				if err != nil {
					return "", err
				}
				return renderer.Markdown(session.ApplyFilter(f), renderer.Options{}), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Statistics",
				Description: "Statistics of the days matching the filter, as a JSON object.",
				Parameters:  filterSchema(nil),
				Response:    &genai.Schema{Type: genai.TypeString, Description: "JSON statistics, amounts as numbers."},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				f, err := filterOf(args)
				if err != nil {
					return "", err
				}
				res := session.ApplyFilter(f)
				data, err := json.Marshal(struct {
					Stats  tradestats.Stats  `json:"stats"`
					Totals tradestats.Totals `json:"totals"`
				}{res.Stats, res.Totals})
				if err != nil {
					return "", fmt.Errorf("failed to encode statistics: %w", err)
				}
				return string(data), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "DailySummary",
				Description: "Per day breakdown of gross P&L, charges, profit sharing and net P&L, latest day first.",
				Parameters: filterSchema(map[string]*genai.Schema{
					"limit": {Type: genai.TypeInteger, Description: "Maximum number of days, 0 for all."},
				}),
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table."},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				f, err := filterOf(args)
				if err != nil {
					return "", err
				}
				limit := 0
				if v, ok := args["limit"].(float64); ok {
					limit = int(v)
				}
				return renderer.DailyMarkdown(session.ApplyFilter(f), limit), nil
			},
		},
	}
}
