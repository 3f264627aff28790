package strategy

import (
	"github.com/shopspring/decimal"

	"SwingScanner/internal/model"
)

var (
	entryFactor      = decimal.RequireFromString("0.995")
	stopLossFactor   = decimal.RequireFromString("0.97")
	takeProfitFactor = decimal.RequireFromString("1.08")
)

// Plan derives entry, stop-loss and take-profit levels from the last price,
// rounded to two decimals.
func Plan(price float64) model.TradePlan {
	p := decimal.NewFromFloat(price)
	return model.TradePlan{
		Entry:      p.Mul(entryFactor).Round(2).InexactFloat64(),
		StopLoss:   p.Mul(stopLossFactor).Round(2).InexactFloat64(),
		TakeProfit: p.Mul(takeProfitFactor).Round(2).InexactFloat64(),
	}
}
