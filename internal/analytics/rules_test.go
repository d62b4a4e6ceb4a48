package analytics

import (
	"testing"

	"bagbuilder-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func codes(ws []Warning) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Code
	}
	return out
}

func TestEvaluateRules_LossStreak(t *testing.T) {
	threeLosses := []models.Trade{
		closed(1, "2025-01-01", 500), // oldest, a win
		closed(2, "2025-01-02", -10),
		closed(3, "2025-01-03", -20),
		closed(4, "2025-01-04", -30),
	}

	t.Run("Three most recent are losses", func(t *testing.T) {
		ws := EvaluateRules(Snapshot{Trades: threeLosses})
		assert.Contains(t, codes(ws), CodeLossStreak)
	})

	t.Run("Slice order of an older trade does not matter", func(t *testing.T) {
		shuffled := []models.Trade{threeLosses[2], threeLosses[0], threeLosses[3], threeLosses[1]}
		assert.Equal(t, EvaluateRules(Snapshot{Trades: threeLosses}), EvaluateRules(Snapshot{Trades: shuffled}))
	})

	t.Run("A recent win breaks it", func(t *testing.T) {
		trades := append([]models.Trade{}, threeLosses...)
		trades = append(trades, closed(5, "2025-01-05", 1))
		assert.NotContains(t, codes(EvaluateRules(Snapshot{Trades: trades})), CodeLossStreak)
	})

	t.Run("Fewer than three closed trades", func(t *testing.T) {
		ws := EvaluateRules(Snapshot{Trades: threeLosses[2:]})
		assert.NotContains(t, codes(ws), CodeLossStreak)
	})

	t.Run("Open trades are ignored", func(t *testing.T) {
		trades := append([]models.Trade{}, threeLosses...)
		trades = append(trades, open(9, "2025-01-09", 10))
		assert.Contains(t, codes(EvaluateRules(Snapshot{Trades: trades})), CodeLossStreak)
	})
}

func TestEvaluateRules_LeveragePolicy(t *testing.T) {
	fut := open(1, "2025-01-01", 10)
	fut.Type = models.TradeTypeFutures
	fut.Leverage = 3

	assert.Contains(t, codes(EvaluateRules(Snapshot{Trades: []models.Trade{fut}})), CodeLeveragePolicy,
		"missing settings disallow leverage")

	allowed := settingsWith(1000, 0)
	profile := allowed.ProfileData()
	profile.LevOK = true
	allowed.Profile = datatypes.NewJSONType(profile)
	assert.NotContains(t, codes(EvaluateRules(Snapshot{Trades: []models.Trade{fut}, Settings: allowed})), CodeLeveragePolicy)
}

func TestEvaluateRules_PositionSize(t *testing.T) {
	snap := Snapshot{
		// Portfolio: 10000 stables + 900 open = 10900; the 4% limit is 436.
		Stables: []models.StableBalance{{Amount: 10000}},
		Trades: []models.Trade{
			open(1, "2025-01-01", 500),
			open(2, "2025-01-02", 400),
		},
	}

	ws := EvaluateRules(snap)
	require.Len(t, ws, 1)
	assert.Equal(t, CodePositionSize, ws[0].Code)
	assert.Equal(t, "1 trade(s) over 4% position limit", ws[0].Message)

	t.Run("Skipped when portfolio is empty", func(t *testing.T) {
		assert.Empty(t, EvaluateRules(Snapshot{}))
	})
}

func TestEvaluateRules_Order(t *testing.T) {
	fut := closed(4, "2025-01-04", -30)
	fut.Type = models.TradeTypeFutures
	snap := Snapshot{
		Trades: []models.Trade{
			closed(1, "2025-01-01", -10),
			closed(2, "2025-01-02", -20),
			fut,
		},
		Stables: []models.StableBalance{{Amount: 100}},
	}

	ws := EvaluateRules(snap)
	assert.Equal(t, []string{CodeLossStreak, CodeLeveragePolicy, CodePositionSize}, codes(ws))
	assert.Len(t, Messages(ws), 3)
}

func TestChecklist(t *testing.T) {
	items := Checklist(Policy{MaxPos: 5, LevOK: true})
	require.Len(t, items, 8)
	assert.Equal(t, "Max 5% per position", items[3].Rule)
	assert.Equal(t, "Max 3-5X leverage, isolated only", items[4].Rule)

	items = Checklist(PolicyFromSettings(nil))
	assert.Equal(t, "Max 4% per position", items[3].Rule)
	assert.Equal(t, "NO leverage yet", items[4].Rule)
}
