package tradestats

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFees(t *testing.T) {
	f := DefaultFees()
	if f.Currency != "INR" {
		t.Errorf("Currency = %q, want INR", f.Currency)
	}
	if !f.STTSellRate.Equal(dec("0.00025")) || !f.GSTRate.Equal(dec("0.18")) || !f.TransactionRate.Equal(dec("0.0000297")) {
		t.Errorf("unexpected default rates: %+v", f)
	}
	if !f.SEBIPerCrore.Equal(dec("10")) || !f.IPFTPerCrore.Equal(dec("50")) {
		t.Errorf("unexpected default per crore charges: %+v", f)
	}
}

func TestParseFees(t *testing.T) {
	f, err := ParseFees([]byte("stt_sell_rate: 0.001\ngst_rate: 0.2\n"))
	if err != nil {
		t.Fatalf("ParseFees() error = %v", err)
	}
	if !f.STTSellRate.Equal(dec("0.001")) || !f.GSTRate.Equal(dec("0.2")) {
		t.Errorf("ParseFees() did not apply the overrides: %+v", f)
	}
	if !f.TransactionRate.Equal(dec("0.0000297")) || f.Currency != "INR" {
		t.Errorf("ParseFees() lost the defaults: %+v", f)
	}

	if _, err := ParseFees([]byte("gst_rate: -1\n")); err == nil {
		t.Error("ParseFees() should reject negative rates")
	}
	if _, err := ParseFees([]byte("gst_rate: [")); err == nil {
		t.Error("ParseFees() should reject invalid yaml")
	}
}

func TestLoadFees(t *testing.T) {
	f, err := LoadFees("")
	if err != nil || !f.GSTRate.Equal(DefaultFees().GSTRate) {
		t.Errorf("LoadFees(\"\") = %+v, %v, want defaults", f, err)
	}

	path := filepath.Join(t.TempDir(), "fees.yaml")
	if err := os.WriteFile(path, []byte("currency: USD\nsebi_per_crore: 15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = LoadFees(path)
	if err != nil {
		t.Fatalf("LoadFees() error = %v", err)
	}
	if f.Currency != "USD" || !f.SEBIPerCrore.Equal(dec("15")) {
		t.Errorf("LoadFees() = %+v, want USD and 15 per crore", f)
	}

	if _, err := LoadFees(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFees() should fail on a missing file")
	}
}
