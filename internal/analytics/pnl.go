package analytics

import "bagbuilder-go/internal/models"

// PnL is the realized outcome of a trade. Both fields are nil for open trades.
type PnL struct {
	Pct *float64 `json:"pnl_pct"`
	USD *float64 `json:"pnl_usd"`
}

// Realized reports whether the PnL has a value.
func (p PnL) Realized() bool {
	return p.Pct != nil && p.USD != nil
}

// CalculatePnL computes the percent and absolute PnL of a trade.
//
// A zero entry, exit or size counts as missing, as does a nil exit. Open trades
// and trades with missing inputs have no realized PnL. The caller must reject an
// entry price <= 0 before getting here; no rounding is applied.
func CalculatePnL(entry float64, exit *float64, size float64, leverage int, status models.TradeStatus) PnL {
	if status != models.TradeStatusClosed {
		return PnL{}
	}
	if exit == nil || *exit == 0 || entry == 0 || size == 0 {
		return PnL{}
	}
	if leverage < 1 {
		leverage = 1
	}

	pct := (*exit - entry) / entry * 100 * float64(leverage)
	usd := pct / 100 * size
	return PnL{Pct: &pct, USD: &usd}
}

// TradePnL computes the PnL from a trade's own fields.
func TradePnL(t models.Trade) PnL {
	return CalculatePnL(t.Entry, t.Exit, t.Size, t.Leverage, t.Status)
}
