package date

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// serialEpoch is day 1 of the spreadsheet serial date system.
//
// Serials are counted as plain days from this epoch, so the phantom
// 1900-02-29 of the spreadsheet convention is not skipped: every serial
// past 59 lands one day later than the spreadsheet displays it.
var serialEpoch = New(1900, time.January, 1)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Normalize converts a ledger date cell into a Date.
//
// Numbers are spreadsheet serial dates, strings are tried as ISO dates,
// then as D-MMM-YY or D-MMM-YYYY, then with a free-form parser. It
// returns false for anything it cannot read; it never panics.
func Normalize(v any) (Date, bool) {
	switch x := v.(type) {
	case nil:
		return Date{}, false
	case Date:
		return x, !x.IsZero()
	case time.Time:
		return FromTime(x), !x.IsZero()
	case float64:
		return FromSerial(x)
	case float32:
		return FromSerial(float64(x))
	case int:
		return FromSerial(float64(x))
	case int64:
		return FromSerial(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Date{}, false
		}
		return FromSerial(f)
	case string:
		return normalizeString(x)
	default:
		return Date{}, false
	}
}

// FromSerial converts a spreadsheet serial date. Any fractional (time of
// day) part is ignored.
func FromSerial(serial float64) (Date, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 {
		return Date{}, false
	}
	return serialEpoch.Add(int(math.Floor(serial)) - 1), true
}

func normalizeString(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	if isoDate.MatchString(s) {
		t, err := time.Parse(DateFormat, s)
		if err != nil {
			return Date{}, false
		}
		return FromTime(t), true
	}
	if d, ok := parseDayMonthYear(s); ok {
		return d, true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return Date{}, false
	}
	return FromTime(t), true
}

// parseDayMonthYear reads "15-Jan-24" and "15-jan-2024". Two digit years
// above 50 belong to the 1900s, the others to the 2000s.
func parseDayMonthYear(s string) (Date, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, false
	}
	m, ok := monthAbbrev[strings.ToLower(parts[1])]
	if !ok {
		return Date{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 || len(parts[0]) > 2 {
		return Date{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 0 {
		return Date{}, false
	}
	switch len(parts[2]) {
	case 4:
	case 2:
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	default:
		return Date{}, false
	}
	return New(year, m, day), true
}
