package tradestats

import (
	"fmt"
	"math"
	"strings"

	"github.com/etnz/tradestats/date"
	"github.com/shopspring/decimal"
)

// Row is one raw ledger row: column name to cell value.
//
// Cell values are strings, numbers (float64, int) or nil, as produced by the
// sheet readers.
type Row map[string]any

// TradeRecord is a single ledger entry.
//
// A negative Amount is a sell (proceeds), a positive one a buy (cost); the
// trade contributes -Amount to the P&L.
type TradeRecord struct {
	Date   date.Date
	Amount decimal.Decimal
}

// PnL returns the P&L contribution of the trade.
func (t TradeRecord) PnL() decimal.Decimal { return t.Amount.Neg() }

// IsSell reports whether the trade is a sell.
func (t TradeRecord) IsSell() bool { return t.Amount.IsNegative() }

// Field is a logical ledger column and the headers it is known under.
type Field struct {
	Name    string
	Aliases []string
}

var (
	EntryDate = Field{Name: "entry_date", Aliases: []string{"Entry Date", "entry_date"}}
	Amount    = Field{Name: "amount", Aliases: []string{"Amount", "amount"}}
)

// fields are the logical fields by name.
var fields = map[string]Field{EntryDate.Name: EntryDate, Amount.Name: Amount}

// headerIndex maps canonical header keys to logical field names.
var headerIndex = buildHeaderIndex(EntryDate, Amount)

func buildHeaderIndex(fields ...Field) map[string]string {
	idx := make(map[string]string)
	for _, f := range fields {
		idx[canonicalHeader(f.Name)] = f.Name
		for _, a := range f.Aliases {
			idx[canonicalHeader(a)] = f.Name
		}
	}
	return idx
}

// canonicalHeader trims, lower-cases and joins words with '_', so that
// "Entry Date", " entry date " and "entry_date" are the same key.
func canonicalHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(h, "_", " "))), "_")
}

// IngestReport counts what happened to the raw rows.
type IngestReport struct {
	Rows    int `json:"rows"`    // raw rows received
	Blank   int `json:"blank"`   // rows with no value at all
	Undated int `json:"undated"` // rows whose date could not be read
	Trades  int `json:"trades"`  // rows kept as trades
}

// Dropped returns the number of rows that did not become trades.
func (r IngestReport) Dropped() int { return r.Blank + r.Undated }

func (r IngestReport) String() string {
	return fmt.Sprintf("%d rows: %d trades, %d blank, %d without a valid date", r.Rows, r.Trades, r.Blank, r.Undated)
}

// Ingest converts raw rows to trade records.
//
// Blank rows and rows without a readable date are dropped and counted in
// the report; an unreadable amount is taken as zero.
func Ingest(rows []Row) ([]TradeRecord, IngestReport) {
	report := IngestReport{Rows: len(rows)}
	trades := make([]TradeRecord, 0, len(rows))
	for _, raw := range rows {
		row, blank := resolve(raw)
		if blank {
			report.Blank++
			continue
		}
		on, ok := date.Normalize(row[EntryDate.Name])
		if !ok {
			report.Undated++
			continue
		}
		trades = append(trades, TradeRecord{Date: on, Amount: parseAmount(row[Amount.Name])})
	}
	report.Trades = len(trades)
	return trades, report
}

// resolve maps a raw row onto logical field names, trimming string values.
// It also reports whether every cell of the raw row is empty.
//
// When several headers of a row name the same field, the first non-empty
// one in the field's alias order wins; headers only matching after
// canonicalisation come last, in lexical order.
func resolve(raw Row) (Row, bool) {
	type pick struct {
		rank   int
		header string
	}
	row := make(Row, 2)
	picked := make(map[string]pick, 2)
	blank := true
	for k, v := range raw {
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
			if v == "" {
				v = nil
			}
		}
		if v == nil {
			continue
		}
		blank = false
		name, ok := headerIndex[canonicalHeader(k)]
		if !ok {
			continue
		}
		p := pick{rank: aliasRank(fields[name], k), header: k}
		if prev, seen := picked[name]; seen && (prev.rank < p.rank || prev.rank == p.rank && prev.header < p.header) {
			continue
		}
		picked[name] = p
		row[name] = v
	}
	return row, blank
}

// aliasRank returns the position of header among the aliases of f.
func aliasRank(f Field, header string) int {
	header = strings.TrimSpace(header)
	for i, a := range f.Aliases {
		if header == a {
			return i
		}
	}
	return len(f.Aliases)
}

// parseAmount reads a numeric cell, ignoring thousands separators.
func parseAmount(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case decimal.Decimal:
		return x
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(x, ",", ""))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
