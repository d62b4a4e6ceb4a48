package analytics

import (
	"math"
	"sort"

	"bagbuilder-go/internal/models"
)

// defaultEmergencyTarget is the emergency fund goal used when no starting
// capital was recorded at onboarding.
const defaultEmergencyTarget = 2500.0

// Snapshot is everything the aggregator and rules look at. It is treated as
// read-only.
type Snapshot struct {
	Trades        []models.Trade
	Stables       []models.StableBalance
	Contributions []models.Contribution
	Settings      *models.UserSettings
}

// Streak is the run of identical outcomes ending at the most recent closed trade.
type Streak struct {
	Count int  `json:"count"`
	IsWin bool `json:"is_win"`
}

// NarrativeStat aggregates the closed trades tagged with one narrative.
type NarrativeStat struct {
	Name    models.Narrative `json:"name"`
	Trades  int              `json:"trades"`
	PnL     float64          `json:"pnl"`
	WinRate float64          `json:"win_rate"`
	AvgPct  float64          `json:"avg_pct"`
	Share   float64          `json:"share"` // percent of all closed trades
}

// Summary is the full set of portfolio figures shown on the dashboard.
type Summary struct {
	ClosedCount int `json:"closed_count"`
	OpenCount   int `json:"open_count"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`

	TotalPnL       float64 `json:"total_pnl"`
	TotalStables   float64 `json:"total_stables"`
	OpenValue      float64 `json:"open_value"`
	TotalPortfolio float64 `json:"total_portfolio"`
	EmergencyFund  float64 `json:"emergency_fund"`
	NetWorth       float64 `json:"net_worth"`

	WinRate      float64 `json:"win_rate"`
	Deployed     float64 `json:"deployed"`
	ROI          float64 `json:"roi"`
	AvgPct       float64 `json:"avg_pct"`
	TPDiscipline float64 `json:"tp_discipline"`

	Best   *models.Trade `json:"best,omitempty"`
	Worst  *models.Trade `json:"worst,omitempty"`
	Streak *Streak       `json:"streak,omitempty"`

	Narratives []NarrativeStat `json:"narratives"`

	TotalContributions float64 `json:"total_contributions"`
	Contributed        float64 `json:"contributed"` // starting capital plus contributions
	EmergencyProgress  float64 `json:"emergency_progress"`
}

type totals struct {
	closed    []models.Trade
	pnl       float64
	stables   float64
	openValue float64
	openCount int
}

func (t totals) portfolio() float64 {
	return t.stables + t.pnl + t.openValue
}

func computeTotals(s Snapshot) totals {
	var out totals
	out.closed = ClosedTrades(s.Trades)
	for _, t := range out.closed {
		out.pnl += *t.PnLUSD
	}
	for _, st := range s.Stables {
		out.stables += st.Amount
	}
	for _, t := range s.Trades {
		if t.Status == models.TradeStatusOpen {
			out.openValue += t.Size
			out.openCount++
		}
	}
	return out
}

// Summarize folds the snapshot into dashboard figures. It is recomputed from
// scratch on every call.
func Summarize(s Snapshot) Summary {
	tot := computeTotals(s)
	closed := tot.closed

	sum := Summary{
		ClosedCount:    len(closed),
		OpenCount:      tot.openCount,
		TotalPnL:       tot.pnl,
		TotalStables:   tot.stables,
		OpenValue:      tot.openValue,
		TotalPortfolio: tot.portfolio(),
		Narratives:     NarrativeBreakdown(closed),
		Streak:         CurrentStreak(closed),
	}

	var capital float64
	if s.Settings != nil {
		sum.EmergencyFund = s.Settings.EmergencyFund
		capital = s.Settings.ProfileData().Capital
	}
	sum.NetWorth = sum.TotalPortfolio + sum.EmergencyFund

	var pctSum float64
	var tpCount int
	for i, t := range closed {
		if t.IsWin() {
			sum.Wins++
		} else {
			sum.Losses++
		}
		sum.Deployed += t.Size
		if t.PnLPct != nil {
			pctSum += *t.PnLPct
		}
		if t.TP1 {
			tpCount++
		}
		if sum.Best == nil || *t.PnLUSD > *sum.Best.PnLUSD {
			sum.Best = &closed[i]
		}
		if sum.Worst == nil || *t.PnLUSD < *sum.Worst.PnLUSD {
			sum.Worst = &closed[i]
		}
	}

	if n := len(closed); n > 0 {
		sum.WinRate = float64(sum.Wins) / float64(n) * 100
		sum.AvgPct = pctSum / float64(n)
		sum.TPDiscipline = float64(tpCount) / float64(n) * 100
	}
	if sum.Deployed > 0 {
		sum.ROI = sum.TotalPnL / sum.Deployed * 100
	}

	for _, c := range s.Contributions {
		sum.TotalContributions += c.Amount
	}
	sum.Contributed = capital + sum.TotalContributions
	sum.EmergencyProgress = emergencyProgress(sum.EmergencyFund, capital)

	return sum
}

// NarrativeBreakdown groups closed trades by narrative. Narratives without
// trades are omitted; the rest are ordered by PnL, highest first.
func NarrativeBreakdown(closed []models.Trade) []NarrativeStat {
	stats := make([]NarrativeStat, 0, len(models.Narratives))
	for _, n := range models.Narratives {
		var st NarrativeStat
		var wins int
		var pctSum float64
		for _, t := range closed {
			if t.Narrative != n || t.PnLUSD == nil {
				continue
			}
			st.Trades++
			st.PnL += *t.PnLUSD
			if t.IsWin() {
				wins++
			}
			if t.PnLPct != nil {
				pctSum += *t.PnLPct
			}
		}
		if st.Trades == 0 {
			continue
		}
		st.Name = n
		st.WinRate = float64(wins) / float64(st.Trades) * 100
		st.AvgPct = pctSum / float64(st.Trades)
		st.Share = float64(st.Trades) / float64(len(closed)) * 100
		stats = append(stats, st)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].PnL > stats[j].PnL
	})
	return stats
}

// TopNarratives returns at most n entries of the breakdown.
func TopNarratives(stats []NarrativeStat, n int) []NarrativeStat {
	if len(stats) <= n {
		return stats
	}
	return stats[:n]
}

// CurrentStreak counts consecutive identical outcomes starting from the most
// recent closed trade. closed must already be ordered most recent first.
// It returns nil when there are no closed trades.
func CurrentStreak(closed []models.Trade) *Streak {
	if len(closed) == 0 {
		return nil
	}
	streak := &Streak{IsWin: closed[0].IsWin()}
	for _, t := range closed {
		if t.IsWin() != streak.IsWin {
			break
		}
		streak.Count++
	}
	return streak
}

func emergencyProgress(fund, capital float64) float64 {
	target := capital * 0.5
	if target == 0 {
		target = defaultEmergencyTarget
	}
	return math.Min(fund/target*100, 100)
}
