package onboarding

import (
	"fmt"
	"strings"
)

// Allocation is one bucket of the starting capital.
type Allocation struct {
	Label  string  `json:"label"`
	Pct    float64 `json:"pct"`
	Amount float64 `json:"amount"`
}

// Plan is what the user sees after finishing the questionnaire.
type Plan struct {
	Name        string       `json:"name"`
	Profile     RiskProfile  `json:"profile"`
	Capital     float64      `json:"capital"`
	Allocations []Allocation `json:"allocations"`
	Rules       []string     `json:"rules"`
}

// BuildPlan derives the profile, splits the starting capital and lists the
// personal rules that go with it.
func BuildPlan(a Answers) Plan {
	p := DeriveRiskProfile(a.Risk, a.Leverage)
	capital := CapitalFromBracket(a.Capital)

	allocations := []Allocation{allocate("Spot", p.SpotPct, capital)}
	if p.FutPct > 0 {
		allocations = append(allocations, allocate("Futures", p.FutPct, capital))
	}
	allocations = append(allocations, allocate("Reserve", p.ReservePct, capital))

	return Plan{
		Name:        strings.TrimSpace(a.Name),
		Profile:     p,
		Capital:     capital,
		Allocations: allocations,
		Rules:       PersonalRules(p),
	}
}

// PersonalRules returns the six rules shown with a plan.
func PersonalRules(p RiskProfile) []string {
	leverage := "NO leverage until 6 months profitable in spot"
	if p.LevOK {
		leverage = "Futures: max 3-5X, isolated margin only"
	}
	return []string{
		fmt.Sprintf("Max position: %g%% of portfolio per trade", p.MaxPos),
		"Sell 50% at 2x, 25% more at 3x",
		"Stop loss at -15% always",
		leverage,
		"3 losses in a row → 48hr break",
		"Log every trade",
	}
}

func allocate(label string, pct, capital float64) Allocation {
	return Allocation{Label: label, Pct: pct, Amount: capital * pct / 100}
}
