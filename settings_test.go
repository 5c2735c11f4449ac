package tradestats

import (
	"math"
	"testing"
)

func TestNewSettings(t *testing.T) {
	tests := []struct {
		name                      string
		capital, brokerage, share float64
		want                      [3]string
	}{
		{"valid", 100000, 20, 10, [3]string{"100000", "20", "10"}},
		{"negative capital", -5, 20, 0, [3]string{"0", "20", "0"}},
		{"negative brokerage", 1000, -1, 0, [3]string{"1000", "0", "0"}},
		{"profit sharing above 100", 1000, 0, 150, [3]string{"1000", "0", "0"}},
		{"not a number", math.NaN(), math.Inf(1), 5, [3]string{"0", "0", "5"}},
	}
	for _, tt := range tests {
		s := NewSettings(tt.capital, tt.brokerage, tt.share)
		got := [3]string{s.Capital.String(), s.BrokeragePerSide.String(), s.ProfitSharingPct.String()}
		if got != tt.want {
			t.Errorf("%s: NewSettings() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
