package tradestats

import (
	"slices"

	"github.com/etnz/tradestats/date"
	"github.com/shopspring/decimal"
)

// DailyAggregate is the P&L and the apportioned costs of one trading day.
type DailyAggregate struct {
	Date              date.Date `json:"date"`
	Gross             Money     `json:"grossPnl"`
	Trades            int       `json:"trades"`
	Brokerage         Money     `json:"brokerage"`
	STT               Money     `json:"stt"`
	TransactionCharge Money     `json:"transactionCharge"`
	SEBICharge        Money     `json:"sebiCharge"`
	IPFTCharge        Money     `json:"ipftCharge"`
	GST               Money     `json:"gst"`
	TotalCost         Money     `json:"totalCost"`
	ProfitSharing     Money     `json:"profitSharing"`
	Net               Money     `json:"netPnl"`
}

// PnL returns the day's P&L in the given mode.
func (d DailyAggregate) PnL(mode PnLMode) Money {
	if mode == Gross {
		return d.Gross
	}
	return d.Net
}

// OtherCharges returns every charge except brokerage.
func (d DailyAggregate) OtherCharges() Money {
	return d.STT.Add(d.TransactionCharge).Add(d.SEBICharge).Add(d.IPFTCharge).Add(d.GST)
}

// Charges are the pooled costs of a set of trades.
type Charges struct {
	Brokerage     Money
	STT           Money
	Transaction   Money
	SEBI          Money
	IPFT          Money
	GST           Money
	ProfitSharing Money
}

// Tax returns every statutory charge, that is everything but brokerage and
// profit sharing.
func (c Charges) Tax() Money {
	return c.STT.Add(c.Transaction).Add(c.SEBI).Add(c.IPFT).Add(c.GST)
}

// PooledCharges computes the dataset wide charges of trades.
func PooledCharges(trades []TradeRecord, fees FeeSchedule, brokeragePerSide, profitSharingPct decimal.Decimal) Charges {
	var buy, sell, gross decimal.Decimal
	for _, t := range trades {
		gross = gross.Add(t.PnL())
		if t.IsSell() {
			sell = sell.Add(t.Amount.Abs())
		} else {
			buy = buy.Add(t.Amount.Abs())
		}
	}
	turnover := buy.Add(sell)
	m := func(v decimal.Decimal) Money { return M(v, fees.Currency) }

	c := Charges{
		Brokerage:   m(brokeragePerSide.Mul(decimal.NewFromInt(int64(len(trades))))),
		STT:         m(sell.Mul(fees.STTSellRate)),
		Transaction: m(turnover.Mul(fees.TransactionRate)),
		SEBI:        m(turnover.Div(crore).Mul(fees.SEBIPerCrore)),
		IPFT:        m(turnover.Div(crore).Mul(fees.IPFTPerCrore)),
	}
	c.GST = c.Brokerage.Add(c.Transaction).Add(c.SEBI).Mul(fees.GSTRate)
	c.ProfitSharing = m(profitSharingPct.Div(hundred).Mul(gross))
	return c
}

// Aggregate groups trades by day and apportions the pooled charges to each
// day in proportion to its number of trades.
//
// The result is sorted by date. Shares are rounded so that, for every
// charge, the days add up exactly to the pooled amount.
func Aggregate(trades []TradeRecord, fees FeeSchedule, brokeragePerSide, profitSharingPct decimal.Decimal) []DailyAggregate {
	byDay := make(map[date.Date]*DailyAggregate)
	for _, t := range trades {
		d, ok := byDay[t.Date]
		if !ok {
			d = &DailyAggregate{Date: t.Date, Gross: M(0, fees.Currency)}
			byDay[t.Date] = d
		}
		d.Gross = d.Gross.Add(M(t.PnL(), fees.Currency))
		d.Trades++
	}
	days := make([]DailyAggregate, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	slices.SortFunc(days, func(a, b DailyAggregate) int { return a.Date.Compare(b.Date) })

	c := PooledCharges(trades, fees, brokeragePerSide, profitSharingPct)
	weights := make([]int, len(days))
	for i, d := range days {
		weights[i] = d.Trades
	}
	brokerage := apportion(c.Brokerage, weights)
	stt := apportion(c.STT, weights)
	txn := apportion(c.Transaction, weights)
	sebi := apportion(c.SEBI, weights)
	ipft := apportion(c.IPFT, weights)
	gst := apportion(c.GST, weights)
	ps := apportion(c.ProfitSharing, weights)

	for i := range days {
		d := &days[i]
		d.Brokerage, d.STT, d.TransactionCharge = brokerage[i], stt[i], txn[i]
		d.SEBICharge, d.IPFTCharge, d.GST = sebi[i], ipft[i], gst[i]
		d.TotalCost = d.Brokerage.Add(d.OtherCharges())
		d.ProfitSharing = ps[i]
		d.Net = d.Gross.Sub(d.TotalCost).Sub(d.ProfitSharing)
	}
	return days
}

// apportion splits total by weights. The last weighted share absorbs the
// division remainder; a zero total weight gives zero shares.
func apportion(total Money, weights []int) []Money {
	shares := make([]Money, len(weights))
	sum := 0
	last := -1
	for i, w := range weights {
		sum += w
		if w > 0 {
			last = i
		}
	}
	zero := M(0, total.Currency())
	if sum == 0 {
		for i := range shares {
			shares[i] = zero
		}
		return shares
	}
	n := decimal.NewFromInt(int64(sum))
	given := zero
	for i, w := range weights {
		if i == last {
			continue
		}
		shares[i] = total.Mul(decimal.NewFromInt(int64(w))).Div(n)
		given = given.Add(shares[i])
	}
	shares[last] = total.Sub(given)
	return shares
}
