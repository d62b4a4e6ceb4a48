package analytics

import (
	"fmt"
	"strconv"

	"bagbuilder-go/internal/models"
)

// Warning codes, in evaluation order.
const (
	CodeLossStreak     = "LOSS_STREAK"
	CodeLeveragePolicy = "LEVERAGE_POLICY"
	CodePositionSize   = "POSITION_SIZE"
)

const (
	defaultMaxPos = 4.0
	lossStreakLen = 3
)

// Warning is a discipline rule the trader is currently breaking.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Policy is the subset of the risk profile the rules depend on.
type Policy struct {
	MaxPos float64 `json:"max_pos"`
	LevOK  bool    `json:"lev_ok"`
}

// PolicyFromSettings extracts the rule policy, falling back to a max
// position of 4% with leverage disallowed when settings or fields are missing.
func PolicyFromSettings(settings *models.UserSettings) Policy {
	p := Policy{MaxPos: defaultMaxPos}
	if settings == nil {
		return p
	}
	profile := settings.ProfileData()
	if profile.MaxPos > 0 {
		p.MaxPos = profile.MaxPos
	}
	p.LevOK = profile.LevOK
	return p
}

// EvaluateRules checks the snapshot against the discipline rules. Warnings
// accumulate and always come back in the same order: loss streak, leverage
// policy, position size.
func EvaluateRules(s Snapshot) []Warning {
	policy := PolicyFromSettings(s.Settings)
	tot := computeTotals(s)
	var warnings []Warning

	if recent := tot.closed; len(recent) >= lossStreakLen {
		allLosses := true
		for _, t := range recent[:lossStreakLen] {
			if *t.PnLUSD >= 0 {
				allLosses = false
				break
			}
		}
		if allLosses {
			warnings = append(warnings, Warning{
				Code:    CodeLossStreak,
				Message: "3 losses in a row: STOP for 48 hours",
			})
		}
	}

	if !policy.LevOK {
		for _, t := range s.Trades {
			if t.Type == models.TradeTypeFutures {
				warnings = append(warnings, Warning{
					Code:    CodeLeveragePolicy,
					Message: "Futures detected: your profile says spot only for now",
				})
				break
			}
		}
	}

	if total := tot.portfolio(); total > 0 {
		limit := total * policy.MaxPos / 100
		var oversized int
		for _, t := range s.Trades {
			if t.Size > limit {
				oversized++
			}
		}
		if oversized > 0 {
			warnings = append(warnings, Warning{
				Code:    CodePositionSize,
				Message: fmt.Sprintf("%d trade(s) over %s%% position limit", oversized, formatPct(policy.MaxPos)),
			})
		}
	}

	return warnings
}

// Messages flattens warnings to their text.
func Messages(warnings []Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Message
	}
	return out
}

// ChecklistItem is one line of the pre-trade checklist.
type ChecklistItem struct {
	ID          string `json:"id"`
	Rule        string `json:"rule"`
	Description string `json:"description"`
}

// Checklist builds the pre-trade checklist for a policy.
func Checklist(p Policy) []ChecklistItem {
	lev := ChecklistItem{ID: "lev", Rule: "NO leverage yet", Description: "6 months profitable in spot first"}
	if p.LevOK {
		lev = ChecklistItem{ID: "lev", Rule: "Max 3-5X leverage, isolated only", Description: "Never use cross margin"}
	}
	return []ChecklistItem{
		{ID: "tp1", Rule: "Sell 50% at 2x", Description: "Lock in your initial investment"},
		{ID: "tp2", Rule: "Sell 25% more at 3x", Description: "Secure additional profit"},
		{ID: "sl", Rule: "Stop loss at -15%", Description: "Max loss per trade, no exceptions"},
		{ID: "size", Rule: fmt.Sprintf("Max %s%% per position", formatPct(p.MaxPos)), Description: "Based on your risk profile"},
		lev,
		{ID: "log", Rule: "Log every trade", Description: "What gets measured gets managed"},
		{ID: "pause", Rule: "3 losses → 48hr pause", Description: "Break the emotional spiral"},
		{ID: "chase", Rule: "Never chase a missed entry", Description: "There's always another trade"},
	}
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
