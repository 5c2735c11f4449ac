package tradestats

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Settings are the user inputs of an analysis.
type Settings struct {
	Capital          decimal.Decimal // capital deployed, zero disables percent of capital.
	BrokeragePerSide decimal.Decimal // flat fee per executed order.
	ProfitSharingPct decimal.Decimal // performance fee in percent of gross P&L.
}

type settingsInput struct {
	Capital          float64 `validate:"gt=0"`
	BrokeragePerSide float64 `validate:"gte=0"`
	ProfitSharingPct float64 `validate:"gte=0,lte=100"`
}

var validate = validator.New()

// NewSettings validates raw inputs.
//
// Invalid values are not an error: each one that fails validation, or is
// not a finite number, is replaced by 0.
func NewSettings(capital, brokeragePerSide, profitSharingPct float64) Settings {
	in := settingsInput{
		Capital:          finite(capital),
		BrokeragePerSide: finite(brokeragePerSide),
		ProfitSharingPct: finite(profitSharingPct),
	}
	var verrs validator.ValidationErrors
	if err := validate.Struct(in); errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.StructField() {
			case "Capital":
				in.Capital = 0
			case "BrokeragePerSide":
				in.BrokeragePerSide = 0
			case "ProfitSharingPct":
				in.ProfitSharingPct = 0
			}
		}
	}
	return Settings{
		Capital:          decimal.NewFromFloat(in.Capital),
		BrokeragePerSide: decimal.NewFromFloat(in.BrokeragePerSide),
		ProfitSharingPct: decimal.NewFromFloat(in.ProfitSharingPct),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
