package onboarding

import "strings"

// Profile labels.
const (
	LabelConservative = "Conservative"
	LabelModerate     = "Moderate"
	LabelAggressive   = "Aggressive"
)

// RiskProfile is the allocation and behaviour policy derived from the answers.
type RiskProfile struct {
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	SpotPct    float64 `json:"spot_pct"`
	FutPct     float64 `json:"fut_pct"`
	ReservePct float64 `json:"reserve_pct"`
	MaxPos     float64 `json:"max_pos"`
	LevOK      bool    `json:"lev_ok"`
}

// DeriveRiskProfile maps the risk and leverage answers to a profile. It
// accepts any input: an empty or unrecognised risk answer yields Moderate.
func DeriveRiskProfile(risk RiskTolerance, leverage LeverageExperience) RiskProfile {
	r := string(risk)
	switch {
	case strings.Contains(r, "Conservative"):
		return RiskProfile{Label: LabelConservative, Color: "#00cc66", SpotPct: 85, FutPct: 0, ReservePct: 15, MaxPos: 3, LevOK: false}
	case strings.Contains(r, "Aggressive"):
		return RiskProfile{Label: LabelAggressive, Color: "#ff4444", SpotPct: 70, FutPct: 15, ReservePct: 15, MaxPos: 5, LevOK: leverageQualified(leverage)}
	default:
		return RiskProfile{Label: LabelModerate, Color: "#ccaa00", SpotPct: 75, FutPct: 10, ReservePct: 15, MaxPos: 4, LevOK: false}
	}
}

// leverageQualified is false if any disqualifying phrase appears.
func leverageQualified(leverage LeverageExperience) bool {
	l := string(leverage)
	return !strings.Contains(l, "liquidated") &&
		!strings.Contains(l, "Never") &&
		!strings.Contains(l, "don't know")
}

var capitalMidpoints = map[CapitalBracket]float64{
	CapitalUnder500:    300,
	Capital500To2000:   1000,
	Capital2000To5000:  3500,
	Capital5000To20000: 10000,
	CapitalOver20000:   25000,
}

// CapitalFromBracket returns a representative amount for a starting-capital
// bracket. Unknown brackets fall back to the "$500 - $2,000" midpoint.
func CapitalFromBracket(b CapitalBracket) float64 {
	if v, ok := capitalMidpoints[b]; ok {
		return v
	}
	return capitalMidpoints[Capital500To2000]
}
