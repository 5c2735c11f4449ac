package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/etnz/tradestats"
)

func testResult(t *testing.T, mode tradestats.PnLMode) *tradestats.AnalysisResult {
	t.Helper()
	rows := []tradestats.Row{
		{"Entry Date": "15-Jan-24", "Amount": "-1,000"},
		{"Entry Date": "15-Jan-24", "Amount": "400"},
		{"Entry Date": "2024-01-16", "Amount": "250"},
		{"Entry Date": "2024-02-02", "Amount": "-700"},
	}
	s, err := tradestats.Load(rows, tradestats.NewSettings(100000, 20, 10), tradestats.DefaultFees())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s.Unfiltered(mode)
}

func TestMarkdown(t *testing.T) {
	got := Markdown(testResult(t, tradestats.Net), Options{Title: "January Report"})
	for _, want := range []string{
		"# January Report",
		"## Summary",
		"Gross to Net (Retention Rate)",
		"## Tax Breakdown",
		"STT",
		"## Statistics (net)",
		"Max Winning Streak",
		"## Day-wise Breakup",
		"## Monthly P&L",
		"## Daily Summary",
		"2024-02-02",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Markdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestMarkdownEmpty(t *testing.T) {
	s := tradestats.NewSession(nil, tradestats.NewSettings(0, 20, 0), tradestats.DefaultFees())
	got := Markdown(s.Unfiltered(tradestats.Net), Options{})
	if !strings.Contains(got, "# P&L Report") || !strings.Contains(got, "no trading day") {
		t.Errorf("Markdown() of an empty result:\n%s", got)
	}
	if strings.Contains(got, "Daily Summary") {
		t.Errorf("Markdown() of an empty result should not have a daily summary:\n%s", got)
	}
}

func TestDailyMarkdownLimit(t *testing.T) {
	got := DailyMarkdown(testResult(t, tradestats.Gross), 2)
	if !strings.Contains(got, "last 2 of 3 days") {
		t.Errorf("DailyMarkdown() title is missing the limit:\n%s", got)
	}
	// most recent first, the oldest day is cut
	if !strings.Contains(got, "2024-02-02") || strings.Contains(got, "2024-01-15") {
		t.Errorf("DailyMarkdown() kept the wrong days:\n%s", got)
	}
}

func TestHTML(t *testing.T) {
	got, err := HTML(testResult(t, tradestats.Net), Options{})
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	for _, want := range []string{"<title>P&amp;L Report</title>", "<table>", "<h2>Summary</h2>", `"labels":["2024-01-15","2024-01-16","2024-02-02"]`} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() does not contain %q", want)
		}
	}
	if strings.Contains(got, `id="filters"`) {
		t.Error("a standalone page should not have the filter form")
	}
}

func TestUploadPage(t *testing.T) {
	var b strings.Builder
	if err := WriteHTML(&b, &Page{Title: "Upload"}); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	if !strings.Contains(b.String(), `id="upload"`) {
		t.Errorf("a page without report should show the upload form:\n%s", b.String())
	}
}

func TestChartWindow(t *testing.T) {
	var c Chart
	for i := range 45 {
		c.Labels = append(c.Labels, fmt.Sprint(i))
		c.Values = append(c.Values, float64(i))
		c.Percents = append(c.Percents, float64(i)/10)
	}
	c.Total = 45
	if !c.Sliding() {
		t.Error("45 days should slide")
	}

	tests := []struct {
		start, size int
		wantStart   int
		wantLen     int
	}{
		{0, MaxVisibleDays, 0, 30},
		{10, MaxVisibleDays, 10, 30},
		{40, MaxVisibleDays, 15, 30}, // clamped to keep a full window
		{-5, MaxVisibleDays, 0, 30},
		{0, 0, 0, 45},
		{3, 100, 0, 45},
	}
	for _, tt := range tests {
		w := c.Window(tt.start, tt.size)
		if w.Start != tt.wantStart || len(w.Labels) != tt.wantLen || len(w.Values) != tt.wantLen || len(w.Percents) != tt.wantLen {
			t.Errorf("Window(%d, %d) = start %d, %d bars, want start %d, %d bars", tt.start, tt.size, w.Start, len(w.Labels), tt.wantStart, tt.wantLen)
		}
		if len(w.Values) > 0 && w.Values[0] != float64(tt.wantStart) {
			t.Errorf("Window(%d, %d) first value = %v, want %d", tt.start, tt.size, w.Values[0], tt.wantStart)
		}
	}
}

func TestNewChart(t *testing.T) {
	c := NewChart(testResult(t, tradestats.Gross))
	if c.Label != "Daily Gross P&L" || c.Total != 3 {
		t.Errorf("NewChart() = %q with %d bars, want Daily Gross P&L with 3", c.Label, c.Total)
	}
	// 15 Jan: 1000 - 400 = 600 on a 100000 capital
	if c.Values[0] != 600 || c.Percents[0] != 0.6 {
		t.Errorf("first bar = %v (%v%%), want 600 (0.6%%)", c.Values[0], c.Percents[0])
	}
}

func TestMonthOptions(t *testing.T) {
	opts := MonthOptions(testResult(t, tradestats.Net).Monthly.Keys())
	if len(opts) != 2 || opts[0].Key != "2024-1" || opts[1].Label != "Feb 2024" {
		t.Errorf("MonthOptions() = %v", opts)
	}
}
