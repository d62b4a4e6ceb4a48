package analytics

import "bagbuilder-go/internal/models"

func f64(v float64) *float64 { return &v }

// closed builds a closed spot trade of size 1000 with the given PnL in USD.
func closed(id uint, date string, pnlUSD float64) models.Trade {
	size := 1000.0
	return models.Trade{
		ID:        id,
		UserID:    "u1",
		Date:      date,
		Coin:      "BTC",
		Type:      models.TradeTypeSpot,
		Entry:     100,
		Exit:      f64(100 + pnlUSD/size*100),
		Size:      size,
		Leverage:  1,
		Status:    models.TradeStatusClosed,
		PnLPct:    f64(pnlUSD / size * 100),
		PnLUSD:    f64(pnlUSD),
		Narrative: models.NarrativeOther,
	}
}

func open(id uint, date string, size float64) models.Trade {
	return models.Trade{
		ID:        id,
		UserID:    "u1",
		Date:      date,
		Coin:      "ETH",
		Type:      models.TradeTypeSpot,
		Entry:     10,
		Size:      size,
		Leverage:  1,
		Status:    models.TradeStatusOpen,
		Narrative: models.NarrativeOther,
	}
}

func withNarrative(t models.Trade, n models.Narrative) models.Trade {
	t.Narrative = n
	return t
}
