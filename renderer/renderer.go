package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/etnz/tradestats"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templates embed.FS

// converter renders the markdown reports, tables included.
var converter = goldmark.New(goldmark.WithExtensions(extension.Table))

// ToHTML converts a markdown report to HTML.
func ToHTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert report to html: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// MonthOption is an entry of the month filter.
type MonthOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// MonthOptions returns the month filter entries, in order.
func MonthOptions(months []tradestats.MonthKey) []MonthOption {
	opts := make([]MonthOption, len(months))
	for i, m := range months {
		opts[i] = MonthOption{Key: m.String(), Label: m.Label()}
	}
	return opts
}

// Page is the data of the HTML page.
type Page struct {
	Title     string
	Report    template.HTML
	Chart     Chart
	SessionID string        // set when the page can query the server for filters.
	Months    []MonthOption // month filter entries.
	From, To  string        // bounds of the date filter.
	Message   string        // error or notice shown above the report.
}

// NewPage builds the page of an analysis.
func NewPage(r *tradestats.AnalysisResult, opts Options) (*Page, error) {
	report, err := ToHTML(Markdown(r, opts))
	if err != nil {
		return nil, err
	}
	p := &Page{Title: opts.Title, Report: report, Chart: NewChart(r)}
	if p.Title == "" {
		p.Title = "P&L Report"
	}
	if len(r.Days) > 0 {
		p.From, p.To = r.Range.From.String(), r.Range.To.String()
	}
	return p, nil
}

// WriteHTML writes the page. A page without report shows the upload form.
func WriteHTML(w io.Writer, p *Page) error {
	tmpl, err := template.ParseFS(templates, "templates/page.html")
	if err != nil {
		return fmt.Errorf("error parsing page template: %w", err)
	}
	if err := tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("error executing page template: %w", err)
	}
	return nil
}

// HTML renders the standalone page of an analysis.
func HTML(r *tradestats.AnalysisResult, opts Options) (string, error) {
	p, err := NewPage(r, opts)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}
