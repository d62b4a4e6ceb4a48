package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnswers() Answers {
	return Answers{
		Name:       "Sam",
		Experience: ExperienceFewMonths,
		Capital:    Capital2000To5000,
		Monthly:    Monthly500To1000,
		Expenses:   Expenses1000To2000,
		Risk:       RiskModerate,
		Leverage:   LeverageNever,
		Goal:       Goal10kTo25k,
	}
}

func TestDeriveRiskProfile(t *testing.T) {
	testCases := []struct {
		name      string
		risk      RiskTolerance
		leverage  LeverageExperience
		wantLabel string
		wantMax   float64
		wantLevOK bool
	}{
		{"conservative never allows leverage", RiskConservative, LeverageProfitable, LabelConservative, 3, false},
		{"moderate never allows leverage", RiskModerate, LeverageProfitable, LabelModerate, 4, false},
		{"aggressive without experience", RiskAggressive, LeverageNever, LabelAggressive, 5, false},
		{"aggressive after liquidation", RiskAggressive, LeverageLiquidated, LabelAggressive, 5, false},
		{"aggressive unfamiliar", RiskAggressive, LeverageUnfamiliar, LabelAggressive, 5, false},
		{"aggressive and profitable", RiskAggressive, LeverageProfitable, LabelAggressive, 5, true},
		{"empty answers fall back to moderate", "", "", LabelModerate, 4, false},
		{"unknown answers fall back to moderate", "YOLO", "maybe", LabelModerate, 4, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DeriveRiskProfile(tc.risk, tc.leverage)
			assert.Equal(t, tc.wantLabel, p.Label)
			assert.Equal(t, tc.wantMax, p.MaxPos)
			assert.Equal(t, tc.wantLevOK, p.LevOK)
			assert.Equal(t, 100.0, p.SpotPct+p.FutPct+p.ReservePct)
		})
	}
}

func TestCapitalFromBracket(t *testing.T) {
	assert.Equal(t, 300.0, CapitalFromBracket(CapitalUnder500))
	assert.Equal(t, 3500.0, CapitalFromBracket(Capital2000To5000))
	assert.Equal(t, 25000.0, CapitalFromBracket(CapitalOver20000))
	assert.Equal(t, 1000.0, CapitalFromBracket("lots"))
}

func TestAnswersValidate(t *testing.T) {
	require.NoError(t, validAnswers().Validate())

	a := validAnswers()
	a.Name = "  "
	var invalid *InvalidAnswerError
	require.ErrorAs(t, a.Validate(), &invalid)
	assert.Equal(t, "name", invalid.Field)

	a = validAnswers()
	a.Goal = ""
	require.ErrorAs(t, a.Validate(), &invalid)
	assert.Equal(t, "goal", invalid.Field)
	assert.EqualError(t, invalid, "goal is required")

	a = validAnswers()
	a.Risk = "Reckless"
	require.ErrorAs(t, a.Validate(), &invalid)
	assert.Equal(t, "risk", invalid.Field)
	assert.Equal(t, "Reckless", invalid.Value)
}

func TestBuildPlan(t *testing.T) {
	plan := BuildPlan(validAnswers())

	assert.Equal(t, "Sam", plan.Name)
	assert.Equal(t, LabelModerate, plan.Profile.Label)
	assert.Equal(t, 3500.0, plan.Capital)
	assert.Equal(t, []Allocation{
		{Label: "Spot", Pct: 75, Amount: 2625},
		{Label: "Futures", Pct: 10, Amount: 350},
		{Label: "Reserve", Pct: 15, Amount: 525},
	}, plan.Allocations)
	require.Len(t, plan.Rules, 6)
	assert.Equal(t, "Max position: 4% of portfolio per trade", plan.Rules[0])
	assert.Equal(t, "NO leverage until 6 months profitable in spot", plan.Rules[3])
}

func TestBuildPlanConservativeHasNoFuturesBucket(t *testing.T) {
	a := validAnswers()
	a.Risk = RiskConservative
	plan := BuildPlan(a)

	labels := make([]string, 0, len(plan.Allocations))
	for _, al := range plan.Allocations {
		labels = append(labels, al.Label)
	}
	assert.Equal(t, []string{"Spot", "Reserve"}, labels)
}

func TestPersonalRulesLeverage(t *testing.T) {
	rules := PersonalRules(DeriveRiskProfile(RiskAggressive, LeverageProfitable))
	assert.Equal(t, "Max position: 5% of portfolio per trade", rules[0])
	assert.Equal(t, "Futures: max 3-5X, isolated margin only", rules[3])
}
