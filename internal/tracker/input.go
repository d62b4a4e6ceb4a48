package tracker

import (
	"math"
	"strings"
	"time"

	"bagbuilder-go/internal/analytics"
	"bagbuilder-go/internal/models"
)

const dateLayout = "2006-01-02"

const (
	// maxAmount caps prices, sizes and balances so that portfolio totals stay finite.
	maxAmount = 1e12
	// maxPnL caps the derived percent and dollar PnL of a single trade.
	maxPnL = 1e15
)

// TradeInput is the trade form as submitted. DeductFrom names a stable
// balance to fund the trade from and is only honoured when logging a new
// trade.
type TradeInput struct {
	Date       string             `json:"date"`
	Coin       string             `json:"coin"`
	Type       models.TradeType   `json:"type"`
	Entry      float64            `json:"entry"`
	Exit       *float64           `json:"exit"`
	Size       float64            `json:"size"`
	Leverage   int                `json:"leverage"`
	Status     models.TradeStatus `json:"status"`
	Notes      string             `json:"notes"`
	Narrative  models.Narrative   `json:"narrative"`
	TP1        bool               `json:"tp1"`
	TP2        bool               `json:"tp2"`
	DeductFrom *uint              `json:"deduct_from,omitempty"`
}

// normalize applies the form defaults: spot is always 1x, an open trade has
// no exit, and blank selections take the form's initial values.
func (in TradeInput) normalize(today string) TradeInput {
	in.Date = strings.TrimSpace(in.Date)
	if in.Date == "" {
		in.Date = today
	}
	in.Coin = strings.ToUpper(strings.TrimSpace(in.Coin))
	if in.Type == "" {
		in.Type = models.TradeTypeSpot
	}
	if in.Status == "" {
		in.Status = models.TradeStatusClosed
	}
	if in.Narrative == "" {
		in.Narrative = models.NarrativeOther
	}
	if in.Type == models.TradeTypeSpot || in.Leverage == 0 {
		in.Leverage = 1
	}
	if in.Status == models.TradeStatusOpen {
		in.Exit = nil
	}
	return in
}

func (in TradeInput) validate() error {
	if err := validateDate(in.Date); err != nil {
		return err
	}
	if in.Coin == "" {
		return invalid("coin", "is required")
	}
	if !in.Type.Valid() {
		return invalid("type", "must be spot or futures")
	}
	if !in.Status.Valid() {
		return invalid("status", "must be open or closed")
	}
	if !in.Narrative.Valid() {
		return invalid("narrative", "is not a known narrative")
	}
	if in.Entry <= 0 {
		return invalid("entry", "must be greater than zero")
	}
	if in.Entry > maxAmount {
		return invalid("entry", "is out of range")
	}
	if in.Size <= 0 {
		return invalid("size", "must be greater than zero")
	}
	if in.Size > maxAmount {
		return invalid("size", "is out of range")
	}
	if in.Leverage < 1 {
		return invalid("leverage", "must be at least 1")
	}
	if in.Status == models.TradeStatusClosed && (in.Exit == nil || *in.Exit <= 0) {
		return invalid("exit", "is required for a closed trade")
	}
	if in.Exit != nil && *in.Exit > maxAmount {
		return invalid("exit", "is out of range")
	}
	if !pnlInRange(in.pnl()) {
		return invalid("exit", "gives a PnL out of range")
	}
	return nil
}

func (in TradeInput) pnl() analytics.PnL {
	return analytics.CalculatePnL(in.Entry, in.Exit, in.Size, in.Leverage, in.Status)
}

// pnlInRange rejects NaN, infinities and values beyond maxPnL.
func pnlInRange(p analytics.PnL) bool {
	for _, v := range []*float64{p.Pct, p.USD} {
		if v != nil && !(math.Abs(*v) <= maxPnL) {
			return false
		}
	}
	return true
}

// validAmount reports whether v is a usable balance; zero is allowed only
// when allowZero is set.
func validAmount(v float64, allowZero bool) bool {
	if allowZero && v == 0 {
		return true
	}
	return v > 0 && v <= maxAmount
}

// trade builds the record to persist, with PnL derived from the form.
func (in TradeInput) trade() models.Trade {
	pnl := in.pnl()
	return models.Trade{
		Date:      in.Date,
		Coin:      in.Coin,
		Type:      in.Type,
		Entry:     in.Entry,
		Exit:      in.Exit,
		Size:      in.Size,
		Leverage:  in.Leverage,
		Status:    in.Status,
		PnLPct:    pnl.Pct,
		PnLUSD:    pnl.USD,
		Notes:     strings.TrimSpace(in.Notes),
		Narrative: in.Narrative,
		TP1:       in.TP1,
		TP2:       in.TP2,
	}
}

// ContributionInput is capital added from outside the portfolio.
type ContributionInput struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return invalid("date", "must be formatted as YYYY-MM-DD")
	}
	return nil
}
