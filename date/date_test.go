package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	tests := []struct {
		got, want Date
	}{
		{New(2024, time.February, 30), New(2024, time.March, 1)},
		{New(2024, time.January, 0), New(2023, time.December, 31)},
		{New(2024, 13, 1), New(2025, time.January, 1)},
		{New(2024, time.January, 31).Add(1), New(2024, time.February, 1)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %v, want %v", tt.got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Date
		err   bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, time.March, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"2024-03-05"` {
		t.Errorf("json.Marshal() = %s, want %q", data, "2024-03-05")
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("json round trip = %v, want %v", back, d)
	}

	var zero Date
	if err := json.Unmarshal([]byte(`""`), &zero); err != nil {
		t.Fatalf("json.Unmarshal(\"\") error = %v", err)
	}
	if !zero.IsZero() {
		t.Errorf("empty string should decode to the zero date, got %v", zero)
	}
}

func TestRangeJSON(t *testing.T) {
	data, err := json.Marshal(NewRange(New(2024, 1, 2), New(2024, 3, 4)))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"from":"2024-01-02","to":"2024-03-04"}`; string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
	var back Range
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back.From != New(2024, 1, 2) || back.To != New(2024, 3, 4) {
		t.Errorf("json round trip = %v, want 2024-01-02..2024-03-04", back)
	}
}

func TestRangeContains(t *testing.T) {
	from, to := New(2024, 1, 10), New(2024, 1, 20)
	r := NewRange(to, from) // reversed on purpose
	if r.From != from || r.To != to {
		t.Fatalf("NewRange did not swap bounds: %v", r)
	}
	tests := []struct {
		r    Range
		d    Date
		want bool
	}{
		{r, from, true},
		{r, to, true},
		{r, New(2024, 1, 15), true},
		{r, New(2024, 1, 9), false},
		{r, New(2024, 1, 21), false},
		{Range{}, New(1999, 1, 1), true},
		{Range{From: from}, New(2030, 1, 1), true},
		{Range{From: from}, New(2024, 1, 9), false},
		{Range{To: to}, New(2000, 1, 1), true},
		{Range{To: to}, New(2024, 1, 21), false},
	}
	for _, tt := range tests {
		if got := tt.r.Contains(tt.d); got != tt.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", tt.r, tt.d, got, tt.want)
		}
	}
	if got := r.Days(); got != 11 {
		t.Errorf("Days() = %d, want 11", got)
	}
}
