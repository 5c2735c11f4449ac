package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/tradestats"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2/predict"
)

// 2024-01-15 is a Monday grossing 50, 2024-02-13 a Tuesday grossing 200.
const ledgerCSV = "Entry Date,Amount\n15-Jan-24,-100\n15-Jan-24,50\n2024-02-13,-200\n"

func writeLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trades.csv")
	if err := os.WriteFile(path, []byte(ledgerCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// parse sets the flags of c from args and returns the remaining arguments.
func parse(t *testing.T, c subcommands.Command, args ...string) []string {
	t.Helper()
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs.Args()
}

func TestLedgerFlagsFilter(t *testing.T) {
	c := &analyzeCmd{}
	parse(t, c, "-from", "2024-03-01", "-to", "2024-01-01", "-days", "Mon, fri", "-months", "2024-1", "-mode", "gross")
	f, err := c.ledger.filter()
	if err != nil {
		t.Fatal(err)
	}
	if f.Mode != tradestats.Gross {
		t.Errorf("mode = %v, want gross", f.Mode)
	}
	if got := f.Range.String(); got != "2024-01-01 to 2024-03-01" {
		t.Errorf("range = %q, want reversed bounds swapped", got)
	}
	if !f.Weekdays.Contains(time.Friday) || f.Weekdays.Contains(time.Tuesday) {
		t.Errorf("weekdays = %v, want Monday and Friday", f.Weekdays.Items())
	}

	parse(t, c, "-days", "Caturday")
	if _, err := c.ledger.filter(); err == nil {
		t.Error("filter with an unknown weekday = nil error")
	}
}

func TestAnalyze(t *testing.T) {
	path := writeLedger(t)
	c := &analyzeCmd{}
	parse(t, c, "-f", path, "-raw", "-brokerage", "0", "-mode", "gross")

	var out bytes.Buffer
	if err := c.run(context.Background(), &out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# P&L Report", "Total Trading Days", "2024-02-13", "Statistics (gross)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report misses %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	parse(t, c, "-f", path)
	if err := c.run(context.Background(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Error("rendered report is empty")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	c := &analyzeCmd{}
	parse(t, c)
	if err := c.run(context.Background(), &bytes.Buffer{}); err == nil {
		t.Error("analyze without ledger = nil error")
	}

	empty := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(empty, []byte("Entry Date,Amount\n"), 0644); err != nil {
		t.Fatal(err)
	}
	parse(t, c, "-f", empty)
	if err := c.run(context.Background(), &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "no usable trades") {
		t.Errorf("analyze of an empty ledger = %v, want the no trades error", err)
	}
}

func TestExport(t *testing.T) {
	path := writeLedger(t)
	dir := t.TempDir()

	c := &exportCmd{}
	html := filepath.Join(dir, "report.html")
	parse(t, c, "-f", path, "-o", html, "-title", "January")
	if err := c.run(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(html)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<title>January</title>") || !strings.Contains(string(data), "<table>") {
		t.Errorf("exported html is not a report:\n%s", data)
	}

	c = &exportCmd{}
	parse(t, c, "-f", path, "-o", filepath.Join(dir, "report.md"))
	if err := c.run(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "report.md"))
	if !strings.HasPrefix(string(data), "# P&L Report") {
		t.Errorf("exported markdown starts with %.40q", data)
	}

	var out bytes.Buffer
	c = &exportCmd{}
	parse(t, c, "-f", path)
	if err := c.run(context.Background(), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "<html") {
		t.Error("export to stdout is not html")
	}
}

func TestQuery(t *testing.T) {
	path := writeLedger(t)
	c := &queryCmd{}
	paths := parse(t, c, "-f", path, "-brokerage", "0", "-mode", "gross", "$.stats.total", "$.stats.tradingDays", "$.days[0].date", `$.monthly["2024-2"]`)

	var out bytes.Buffer
	if err := c.run(context.Background(), &out, paths); err != nil {
		t.Fatal(err)
	}
	want := "250\n2\n2024-01-15\n200\n"
	if out.String() != want {
		t.Errorf("query output = %q, want %q", out.String(), want)
	}

	if err := c.run(context.Background(), &bytes.Buffer{}, []string{"$.nope["}); err == nil {
		t.Error("invalid jsonpath = nil error")
	}
}

func TestServeConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PNL_ADDR", ":9000")
	t.Setenv("PNL_LEDGER", "env.csv")

	c := &serveCmd{}
	parse(t, c, "-f", "flag.csv")
	cfg, err := c.config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("addr = %q, want the environment's", cfg.Addr)
	}
	if cfg.Ledger != "flag.csv" {
		t.Errorf("ledger = %q, want the flag's", cfg.Ledger)
	}
}

func TestCompletion(t *testing.T) {
	cc := completion(&analyzeCmd{})
	if _, ok := cc.Flags["mode"].(predict.Set); !ok {
		t.Errorf("mode predictor = %T, want a set", cc.Flags["mode"])
	}
	for _, name := range []string{"f", "capital", "brokerage", "profit-sharing", "from", "to", "days", "months", "daily"} {
		if cc.Flags[name] == nil {
			t.Errorf("flag %q has no predictor", name)
		}
	}
}
