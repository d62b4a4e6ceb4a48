package models

import "time"

// Trade is a single journaled trade owned by one user.
// PnLPct and PnLUSD are set when the trade is saved and are nil while it is open.
type Trade struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"index;not null" json:"user_id"`
	Date      string      `gorm:"index;not null" json:"date"` // YYYY-MM-DD
	Coin      string      `gorm:"not null" json:"coin"`
	Type      TradeType   `gorm:"not null" json:"type"`
	Entry     float64     `gorm:"not null" json:"entry"`
	Exit      *float64    `json:"exit"`
	Size      float64     `gorm:"not null" json:"size"`
	Leverage  int         `gorm:"not null;default:1" json:"leverage"`
	Status    TradeStatus `gorm:"not null" json:"status"`
	PnLPct    *float64    `gorm:"column:pnl_pct" json:"pnl_pct"`
	PnLUSD    *float64    `gorm:"column:pnl_usd" json:"pnl_usd"`
	Notes     string      `json:"notes"`
	Narrative Narrative   `json:"narrative"`
	TP1       bool        `gorm:"column:tp1" json:"tp1"`
	TP2       bool        `gorm:"column:tp2" json:"tp2"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// IsClosed reports whether the trade has a realized outcome.
func (t Trade) IsClosed() bool {
	return t.Status == TradeStatusClosed && t.PnLUSD != nil
}

// IsWin reports whether a closed trade made money. Break-even counts as a loss.
func (t Trade) IsWin() bool {
	return t.PnLUSD != nil && *t.PnLUSD > 0
}
