package models

// TradeType distinguishes spot buys from leveraged futures positions.
type TradeType string

const (
	TradeTypeSpot    TradeType = "spot"
	TradeTypeFutures TradeType = "futures"
)

// Valid reports whether t is a known trade type.
func (t TradeType) Valid() bool {
	return t == TradeTypeSpot || t == TradeTypeFutures
}

// TradeStatus is the lifecycle state of a trade.
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// Valid reports whether s is a known trade status.
func (s TradeStatus) Valid() bool {
	return s == TradeStatusOpen || s == TradeStatusClosed
}

// Narrative tags the market sector a trade belongs to.
type Narrative string

const (
	NarrativeAIAgents  Narrative = "AI Agents"
	NarrativeMemecoins Narrative = "Memecoins"
	NarrativeDePIN     Narrative = "DePIN"
	NarrativeRWA       Narrative = "RWA"
	NarrativeGaming    Narrative = "Gaming"
	NarrativeL1L2      Narrative = "L1/L2"
	NarrativeDeFi      Narrative = "DeFi"
	NarrativePrivacy   Narrative = "Privacy"
	NarrativeOther     Narrative = "Other"
)

// Narratives lists every narrative in display order.
var Narratives = []Narrative{
	NarrativeAIAgents,
	NarrativeMemecoins,
	NarrativeDePIN,
	NarrativeRWA,
	NarrativeGaming,
	NarrativeL1L2,
	NarrativeDeFi,
	NarrativePrivacy,
	NarrativeOther,
}

// Valid reports whether n is one of the fixed narratives.
func (n Narrative) Valid() bool {
	for _, known := range Narratives {
		if n == known {
			return true
		}
	}
	return false
}
