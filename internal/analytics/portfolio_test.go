package analytics

import (
	"fmt"
	"testing"

	"bagbuilder-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func settingsWith(capital, emergency float64) *models.UserSettings {
	return &models.UserSettings{
		UserID:        "u1",
		ProfileLabel:  "Moderate",
		Profile:       datatypes.NewJSONType(models.Profile{SpotPct: 75, FutPct: 10, ReservePct: 15, MaxPos: 4, Capital: capital}),
		EmergencyFund: emergency,
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(Snapshot{})

	assert.Zero(t, sum.WinRate)
	assert.Zero(t, sum.ROI)
	assert.Zero(t, sum.AvgPct)
	assert.Zero(t, sum.TPDiscipline)
	assert.Nil(t, sum.Best)
	assert.Nil(t, sum.Worst)
	assert.Nil(t, sum.Streak)
	assert.Empty(t, sum.Narratives)
	assert.Zero(t, sum.EmergencyProgress)
}

func TestSummarize_Totals(t *testing.T) {
	win := closed(1, "2025-01-01", 200)
	win.TP1 = true
	loss := closed(2, "2025-01-02", -50)
	pending := open(3, "2025-01-03", 300)
	// Closed status without PnL is not counted as closed.
	broken := closed(4, "2025-01-04", 0)
	broken.PnLUSD = nil

	snap := Snapshot{
		Trades:        []models.Trade{pending, loss, win, broken},
		Stables:       []models.StableBalance{{Label: "USDC", Amount: 1000}, {Label: "USDT", Amount: 500}},
		Contributions: []models.Contribution{{Amount: 250}, {Amount: 750}},
		Settings:      settingsWith(3500, 525),
	}

	sum := Summarize(snap)

	assert.Equal(t, 2, sum.ClosedCount)
	assert.Equal(t, 1, sum.OpenCount)
	assert.Equal(t, 1, sum.Wins)
	assert.Equal(t, 1, sum.Losses)
	assert.InDelta(t, 150, sum.TotalPnL, 1e-9)
	assert.InDelta(t, 1500, sum.TotalStables, 1e-9)
	assert.InDelta(t, 300, sum.OpenValue, 1e-9)
	assert.InDelta(t, 1950, sum.TotalPortfolio, 1e-9)
	assert.InDelta(t, 2475, sum.NetWorth, 1e-9)
	assert.InDelta(t, 50, sum.WinRate, 1e-9)
	assert.InDelta(t, 2000, sum.Deployed, 1e-9)
	assert.InDelta(t, 7.5, sum.ROI, 1e-9)
	assert.InDelta(t, 7.5, sum.AvgPct, 1e-9)
	assert.InDelta(t, 50, sum.TPDiscipline, 1e-9)
	assert.InDelta(t, 1000, sum.TotalContributions, 1e-9)
	assert.InDelta(t, 4500, sum.Contributed, 1e-9)
	assert.InDelta(t, 30, sum.EmergencyProgress, 1e-9)

	require.NotNil(t, sum.Best)
	require.NotNil(t, sum.Worst)
	assert.Equal(t, uint(1), sum.Best.ID)
	assert.Equal(t, uint(2), sum.Worst.ID)
}

func TestSummarize_EmergencyProgressCapped(t *testing.T) {
	sum := Summarize(Snapshot{Settings: settingsWith(0, 5000)})
	assert.Equal(t, 100.0, sum.EmergencyProgress)
}

func TestSummarize_BestWorstTieGoesToMostRecent(t *testing.T) {
	older := closed(1, "2025-01-01", 100)
	newer := closed(2, "2025-01-05", 100)

	sum := Summarize(Snapshot{Trades: []models.Trade{older, newer}})

	require.NotNil(t, sum.Best)
	assert.Equal(t, uint(2), sum.Best.ID)
	assert.Equal(t, uint(2), sum.Worst.ID)
}

func TestSummarize_Idempotent(t *testing.T) {
	snap := Snapshot{
		Trades: []models.Trade{
			withNarrative(closed(1, "2025-01-01", 120), models.NarrativeDeFi),
			withNarrative(closed(2, "2025-01-02", -40), models.NarrativeMemecoins),
			open(3, "2025-01-03", 80),
		},
		Stables:  []models.StableBalance{{Amount: 900}},
		Settings: settingsWith(1000, 100),
	}
	before := SortMostRecentFirst(snap.Trades)

	first := Summarize(snap)
	second := Summarize(snap)

	assert.Equal(t, first, second)
	assert.Equal(t, before, SortMostRecentFirst(snap.Trades), "input must not be reordered")
}

func TestCurrentStreak(t *testing.T) {
	testCases := []struct {
		name   string
		pnls   []float64 // most recent first
		expect *Streak
	}{
		{name: "No data", pnls: nil, expect: nil},
		{name: "Loss loss win loss", pnls: []float64{-10, -5, 20, -1}, expect: &Streak{Count: 2, IsWin: false}},
		{name: "Three wins", pnls: []float64{5, 5, 5}, expect: &Streak{Count: 3, IsWin: true}},
		{name: "Break-even is a loss", pnls: []float64{0, -3, 4}, expect: &Streak{Count: 2, IsWin: false}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var trades []models.Trade
			for i, p := range tc.pnls {
				// Later index means older date.
				trades = append(trades, closed(uint(100-i), fmt.Sprintf("2025-02-%02d", 28-i), p))
			}
			assert.Equal(t, tc.expect, CurrentStreak(ClosedTrades(trades)))
		})
	}
}

func TestNarrativeBreakdown(t *testing.T) {
	trades := []models.Trade{
		withNarrative(closed(1, "2025-01-01", 100), models.NarrativeDeFi),
		withNarrative(closed(2, "2025-01-02", -30), models.NarrativeDeFi),
		withNarrative(closed(3, "2025-01-03", 400), models.NarrativeAIAgents),
		withNarrative(closed(4, "2025-01-04", -80), models.NarrativeGaming),
		withNarrative(open(5, "2025-01-05", 50), models.NarrativeRWA),
	}

	stats := NarrativeBreakdown(ClosedTrades(trades))

	require.Len(t, stats, 3)
	assert.Equal(t, models.NarrativeAIAgents, stats[0].Name)
	assert.Equal(t, models.NarrativeDeFi, stats[1].Name)
	assert.Equal(t, models.NarrativeGaming, stats[2].Name)
	for i := 1; i < len(stats); i++ {
		assert.GreaterOrEqual(t, stats[i-1].PnL, stats[i].PnL)
	}
	for _, st := range stats {
		assert.NotZero(t, st.Trades)
		assert.NotEqual(t, models.NarrativeRWA, st.Name)
	}

	defi := stats[1]
	assert.Equal(t, 2, defi.Trades)
	assert.InDelta(t, 70, defi.PnL, 1e-9)
	assert.InDelta(t, 50, defi.WinRate, 1e-9)
	assert.InDelta(t, 3.5, defi.AvgPct, 1e-9)
	assert.InDelta(t, 50, defi.Share, 1e-9)

	assert.Len(t, TopNarratives(stats, 2), 2)
	assert.Len(t, TopNarratives(stats, 5), 3)
}

func TestSortMostRecentFirst(t *testing.T) {
	trades := []models.Trade{
		closed(1, "2025-01-01", 1),
		closed(3, "2025-01-02", 1),
		closed(2, "2025-01-02", 1),
	}
	sorted := SortMostRecentFirst(trades)

	assert.Equal(t, []uint{3, 2, 1}, []uint{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, uint(1), trades[0].ID, "input slice is untouched")
}
