package date

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Date
		ok    bool
	}{
		{"day-month-yy", "15-Jan-24", New(2024, time.January, 15), true},
		{"day-month-yyyy lowercase", "5-jan-2024", New(2024, time.January, 5), true},
		{"upper case month", "01-FEB-99", New(1999, time.February, 1), true},
		{"pivot 50 stays in 2000s", "01-Mar-50", New(2050, time.March, 1), true},
		{"pivot 51 goes to 1900s", "01-Mar-51", New(1951, time.March, 1), true},
		{"iso", "2024-01-15", New(2024, time.January, 15), true},
		{"iso with spaces", "  2024-01-15 ", New(2024, time.January, 15), true},
		{"iso out of range", "2024-13-45", Date{}, false},
		{"serial 1", 1.0, New(1900, time.January, 1), true},
		{"serial 45000", 45000.0, New(2023, time.March, 16), true},
		{"serial int", 45306, New(2024, time.January, 16), true},
		{"serial with time", 45000.75, New(2023, time.March, 16), true},
		{"serial leap artifact", 60.0, New(1900, time.March, 1), true},
		{"json number", json.Number("45000"), New(2023, time.March, 16), true},
		{"zero serial", 0.0, Date{}, false},
		{"negative serial", -3.0, Date{}, false},
		{"nan", math.NaN(), Date{}, false},
		{"free form", "January 15, 2024", New(2024, time.January, 15), true},
		{"free form slashes", "2024/01/15", New(2024, time.January, 15), true},
		{"time value", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), New(2024, time.January, 15), true},
		{"empty", "", Date{}, false},
		{"blank", "   ", Date{}, false},
		{"nil", nil, Date{}, false},
		{"garbage", "not a date", Date{}, false},
		{"unsupported type", true, Date{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			if ok != tt.ok {
				t.Fatalf("Normalize(%v) ok = %v, want %v (got %v)", tt.input, ok, tt.ok, got)
			}
			if got != tt.want {
				t.Errorf("Normalize(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
