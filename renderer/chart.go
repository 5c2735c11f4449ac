package renderer

import (
	"github.com/etnz/tradestats"
)

// MaxVisibleDays is the width of the chart window.
const MaxVisibleDays = 30

// Chart is the data of the daily P&L bar chart.
type Chart struct {
	Label    string    `json:"label"`
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
	Percents []float64 `json:"percents,omitempty"` // % of capital, empty without capital.
	Start    int       `json:"start"`             // index of the first bar in the full series.
	Total    int       `json:"total"`             // number of bars in the full series.
}

// NewChart returns the chart of every day of r.
func NewChart(r *tradestats.AnalysisResult) Chart {
	capital := r.Capital()
	c := Chart{Total: len(r.Days)}
	if r.Mode == tradestats.Gross {
		c.Label = "Daily Gross P&L"
	} else {
		c.Label = "Daily Net P&L"
	}
	for _, d := range r.Days {
		pnl := d.PnL(r.Mode)
		c.Labels = append(c.Labels, d.Date.String())
		c.Values = append(c.Values, pnl.Float())
		if capital.IsPositive() {
			c.Percents = append(c.Percents, float64(pnl.PercentOf(capital)))
		}
	}
	return c
}

// Sliding reports whether the series is longer than a window.
func (c Chart) Sliding() bool { return c.Total > MaxVisibleDays }

// Window returns at most size bars starting at start. Out of range starts
// are clamped so the window stays full whenever possible.
func (c Chart) Window(start, size int) Chart {
	n := len(c.Labels)
	if size <= 0 || size > n {
		size = n
	}
	start = max(0, min(start, n-size))
	w := Chart{
		Label:  c.Label,
		Labels: c.Labels[start : start+size],
		Values: c.Values[start : start+size],
		Start:  c.Start + start,
		Total:  c.Total,
	}
	if len(c.Percents) == n {
		w.Percents = c.Percents[start : start+size]
	}
	return w
}
