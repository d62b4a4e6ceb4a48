package tracker

import (
	"context"
	"errors"

	"bagbuilder-go/internal/analytics"
	"bagbuilder-go/internal/models"
	"bagbuilder-go/internal/onboarding"
	"bagbuilder-go/internal/store"
)

const (
	topNarratives = 3
	recentTrades  = 5
)

// Dashboard is the home screen.
type Dashboard struct {
	Name          string                    `json:"name"`
	ProfileLabel  string                    `json:"profile_label"`
	Policy        analytics.Policy          `json:"policy"`
	Summary       analytics.Summary         `json:"summary"`
	Warnings      []analytics.Warning       `json:"warnings"`
	TopNarratives []analytics.NarrativeStat `json:"top_narratives"`
	RecentTrades  []models.Trade            `json:"recent_trades"`
}

// RulesReport is the rules screen: the personal rules from onboarding, the
// pre-trade checklist and whatever is currently being broken.
type RulesReport struct {
	ProfileLabel  string                    `json:"profile_label"`
	Policy        analytics.Policy          `json:"policy"`
	PersonalRules []string                  `json:"personal_rules"`
	Checklist     []analytics.ChecklistItem `json:"checklist"`
	Warnings      []analytics.Warning       `json:"warnings"`
}

// Snapshot loads everything the analytics need. A user who has not been
// onboarded yet gets nil settings.
func (s *Service) Snapshot(ctx context.Context, userID string) (analytics.Snapshot, error) {
	trades, err := s.store.ListTrades(ctx, userID)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	stables, err := s.store.ListStables(ctx, userID)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	contribs, err := s.store.ListContributions(ctx, userID)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	settings, err := s.store.GetSettings(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		settings = nil
	} else if err != nil {
		return analytics.Snapshot{}, err
	}
	return analytics.Snapshot{Trades: trades, Stables: stables, Contributions: contribs, Settings: settings}, nil
}

// Dashboard summarizes the portfolio and evaluates the discipline rules.
func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(snap)

	recent := analytics.SortMostRecentFirst(snap.Trades)
	if len(recent) > recentTrades {
		recent = recent[:recentTrades]
	}

	name, label := profileOf(snap.Settings)
	return &Dashboard{
		Name:          name,
		ProfileLabel:  label,
		Policy:        analytics.PolicyFromSettings(snap.Settings),
		Summary:       summary,
		Warnings:      nonNil(analytics.EvaluateRules(snap)),
		TopNarratives: analytics.TopNarratives(summary.Narratives, topNarratives),
		RecentTrades:  recent,
	}, nil
}

// Stats returns the full summary including the per-narrative breakdown.
func (s *Service) Stats(ctx context.Context, userID string) (analytics.Summary, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(snap), nil
}

// Warnings evaluates the discipline rules only.
func (s *Service) Warnings(ctx context.Context, userID string) ([]analytics.Warning, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNil(analytics.EvaluateRules(snap)), nil
}

// Rules builds the rules screen.
func (s *Service) Rules(ctx context.Context, userID string) (*RulesReport, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	policy := analytics.PolicyFromSettings(snap.Settings)
	_, label := profileOf(snap.Settings)
	return &RulesReport{
		ProfileLabel:  label,
		Policy:        policy,
		PersonalRules: onboarding.PersonalRules(onboarding.RiskProfile{Label: label, MaxPos: policy.MaxPos, LevOK: policy.LevOK}),
		Checklist:     analytics.Checklist(policy),
		Warnings:      nonNil(analytics.EvaluateRules(snap)),
	}, nil
}

// profileOf returns the display name and profile label, defaulting the
// label to Moderate.
func profileOf(settings *models.UserSettings) (name, label string) {
	label = onboarding.LabelModerate
	if settings == nil {
		return "", label
	}
	if settings.ProfileLabel != "" {
		label = settings.ProfileLabel
	}
	return settings.Name, label
}

func nonNil(ws []analytics.Warning) []analytics.Warning {
	if ws == nil {
		return []analytics.Warning{}
	}
	return ws
}
