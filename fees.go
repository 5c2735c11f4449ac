package tradestats

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FeeSchedule holds the statutory rates applied to a ledger's turnover.
//
// A FeeSchedule is loaded once and never mutated afterwards.
type FeeSchedule struct {
	Currency        string          // ISO code of the ledger currency.
	STTSellRate     decimal.Decimal // securities transaction tax on sell turnover.
	TransactionRate decimal.Decimal // exchange charge on total turnover.
	SEBIPerCrore    decimal.Decimal // regulator fee per crore of turnover.
	IPFTPerCrore    decimal.Decimal // investor protection fund fee per crore of turnover.
	GSTRate         decimal.Decimal // tax on brokerage, transaction and SEBI charges.
}

// DefaultFees returns the NSE option selling schedule.
func DefaultFees() FeeSchedule {
	return FeeSchedule{
		Currency:        "INR",
		STTSellRate:     decimal.RequireFromString("0.00025"),
		TransactionRate: decimal.RequireFromString("0.0000297"),
		SEBIPerCrore:    decimal.NewFromInt(10),
		IPFTPerCrore:    decimal.NewFromInt(50),
		GSTRate:         decimal.RequireFromString("0.18"),
	}
}

// feeFile is the yaml form of a FeeSchedule, missing keys keep the defaults.
type feeFile struct {
	Currency        *string  `yaml:"currency"`
	STTSellRate     *float64 `yaml:"stt_sell_rate"`
	TransactionRate *float64 `yaml:"transaction_rate"`
	SEBIPerCrore    *float64 `yaml:"sebi_per_crore"`
	IPFTPerCrore    *float64 `yaml:"ipft_per_crore"`
	GSTRate         *float64 `yaml:"gst_rate"`
}

// LoadFees reads a yaml fee schedule. An empty path returns DefaultFees.
func LoadFees(path string) (FeeSchedule, error) {
	fees := DefaultFees()
	if path == "" {
		return fees, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fees, fmt.Errorf("failed to read fee schedule: %w", err)
	}
	return ParseFees(data)
}

// ParseFees decodes a yaml fee schedule over DefaultFees.
func ParseFees(data []byte) (FeeSchedule, error) {
	fees := DefaultFees()
	var f feeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fees, fmt.Errorf("failed to parse fee schedule: %w", err)
	}
	if f.Currency != nil && *f.Currency != "" {
		fees.Currency = *f.Currency
	}
	set := func(dst *decimal.Decimal, v *float64, name string) error {
		if v == nil {
			return nil
		}
		if *v < 0 {
			return fmt.Errorf("invalid fee schedule: %s must not be negative, got %v", name, *v)
		}
		*dst = decimal.NewFromFloat(*v)
		return nil
	}
	for _, r := range []struct {
		dst  *decimal.Decimal
		v    *float64
		name string
	}{
		{&fees.STTSellRate, f.STTSellRate, "stt_sell_rate"},
		{&fees.TransactionRate, f.TransactionRate, "transaction_rate"},
		{&fees.SEBIPerCrore, f.SEBIPerCrore, "sebi_per_crore"},
		{&fees.IPFTPerCrore, f.IPFTPerCrore, "ipft_per_crore"},
		{&fees.GSTRate, f.GSTRate, "gst_rate"},
	} {
		if err := set(r.dst, r.v, r.name); err != nil {
			return DefaultFees(), err
		}
	}
	return fees, nil
}
