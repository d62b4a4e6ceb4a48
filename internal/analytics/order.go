// Package analytics holds the pure trade analytics: PnL math, portfolio
// aggregation and the discipline rules. Every function works on an immutable
// snapshot and keeps no state between calls.
package analytics

import (
	"sort"

	"bagbuilder-go/internal/models"
)

// SortMostRecentFirst returns a copy of trades ordered by date descending,
// then by ID descending so trades logged later on the same day come first.
// This is the order "most recent" refers to everywhere in this package.
func SortMostRecentFirst(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// ClosedTrades returns the closed trades with a realized PnL, most recent first.
func ClosedTrades(trades []models.Trade) []models.Trade {
	var closed []models.Trade
	for _, t := range SortMostRecentFirst(trades) {
		if t.IsClosed() {
			closed = append(closed, t)
		}
	}
	return closed
}

// OpenTrades returns the open trades, most recent first.
func OpenTrades(trades []models.Trade) []models.Trade {
	var open []models.Trade
	for _, t := range SortMostRecentFirst(trades) {
		if t.Status == models.TradeStatusOpen {
			open = append(open, t)
		}
	}
	return open
}
