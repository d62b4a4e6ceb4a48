// Package tracker implements the journal's use cases on top of a store. It
// validates input, derives values with the analytics package and never
// caches what it reads: every report is recomputed from a fresh snapshot.
package tracker

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"bagbuilder-go/internal/analytics"
	"bagbuilder-go/internal/models"
	"bagbuilder-go/internal/onboarding"
	"bagbuilder-go/internal/store"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// onboardingStable is the stablecoin the spot allocation is parked in.
const onboardingStable = "USDC"

// Service is the tracker's entry point for the API and the CLI.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a tracker backed by st.
func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger.Named("tracker"), now: time.Now}
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

// Onboard validates the questionnaire, stores the derived settings and
// parks the spot allocation in a USDC balance.
func (s *Service) Onboard(ctx context.Context, userID string, answers onboarding.Answers) (onboarding.Plan, error) {
	if err := answers.Validate(); err != nil {
		return onboarding.Plan{}, fromAnswerError(err)
	}
	plan := onboarding.BuildPlan(answers)
	p := plan.Profile

	settings := &models.UserSettings{
		Name:         plan.Name,
		ProfileLabel: p.Label,
		Profile: datatypes.NewJSONType(models.Profile{
			SpotPct:    p.SpotPct,
			FutPct:     p.FutPct,
			ReservePct: p.ReservePct,
			MaxPos:     p.MaxPos,
			LevOK:      p.LevOK,
			Capital:    plan.Capital,
		}),
		EmergencyFund: plan.Capital * p.ReservePct / 100,
	}
	if err := s.store.UpsertSettings(ctx, userID, settings); err != nil {
		return onboarding.Plan{}, err
	}

	if plan.Capital > 0 {
		stable := &models.StableBalance{Label: onboardingStable, Amount: plan.Capital * p.SpotPct / 100}
		if err := s.store.CreateStable(ctx, userID, stable); err != nil {
			return onboarding.Plan{}, err
		}
	}

	s.logger.Info("User onboarded",
		zap.String("user_id", userID),
		zap.String("profile", p.Label),
		zap.Float64("capital", plan.Capital),
	)
	return plan, nil
}

// Settings returns the user's settings, or store.ErrNotFound before onboarding.
func (s *Service) Settings(ctx context.Context, userID string) (*models.UserSettings, error) {
	return s.store.GetSettings(ctx, userID)
}

// SetEmergencyFund records the amount set aside outside the portfolio.
func (s *Service) SetEmergencyFund(ctx context.Context, userID string, amount float64) (*models.UserSettings, error) {
	if !validAmount(amount, true) {
		return nil, invalid("emergency_fund", "must be between 0 and 1e12")
	}
	settings, err := s.store.GetSettings(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		settings = &models.UserSettings{ProfileLabel: onboarding.LabelModerate}
	} else if err != nil {
		return nil, err
	}
	settings.EmergencyFund = amount
	if err := s.store.UpsertSettings(ctx, userID, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Trades lists the user's trades, most recent first.
func (s *Service) Trades(ctx context.Context, userID string) ([]models.Trade, error) {
	return s.store.ListTrades(ctx, userID)
}

// Preview computes the PnL the form would be saved with. Incomplete forms
// preview as no PnL.
func (s *Service) Preview(in TradeInput) analytics.PnL {
	in = in.normalize(s.today())
	if in.Entry <= 0 {
		return analytics.PnL{}
	}
	pnl := in.pnl()
	if !pnlInRange(pnl) {
		return analytics.PnL{}
	}
	return pnl
}

// LogTrade validates and stores a new trade. When the form names a stable
// balance to fund it from, that balance is reduced by the trade size, never
// below zero. If the balance cannot be written the trade is removed again so
// the two records stay consistent.
func (s *Service) LogTrade(ctx context.Context, userID string, in TradeInput) (*models.Trade, error) {
	in = in.normalize(s.today())
	if err := in.validate(); err != nil {
		return nil, err
	}

	var funding *models.StableBalance
	if in.DeductFrom != nil {
		sb, err := s.store.GetStable(ctx, userID, *in.DeductFrom)
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalid("deduct_from", "unknown stable balance")
		} else if err != nil {
			return nil, err
		}
		funding = sb
	}

	trade := in.trade()
	if err := s.store.CreateTrade(ctx, userID, &trade); err != nil {
		return nil, err
	}
	l := s.logger.With(zap.String("user_id", userID), zap.Uint("trade_id", trade.ID), zap.String("coin", trade.Coin))

	if funding != nil {
		remaining := math.Max(0, funding.Amount-trade.Size)
		if err := s.store.UpdateStableAmount(ctx, userID, funding.ID, remaining); err != nil {
			l.Error("Failed to fund trade from stable balance, removing trade", zap.Uint("stable_id", funding.ID), zap.Error(err))
			if rbErr := s.store.DeleteTrade(ctx, userID, trade.ID); rbErr != nil {
				l.Error("Failed to remove unfunded trade", zap.Error(rbErr))
				return nil, errors.Join(err, rbErr)
			}
			return nil, err
		}
		l.Info("Funded trade from stable balance", zap.String("stable", funding.Label), zap.Float64("remaining", remaining))
	}

	l.Info("Logged trade", zap.String("status", string(trade.Status)))
	return &trade, nil
}

// UpdateTrade replaces an existing trade with the form and recomputes its PnL.
// Funding is ignored on edits. The stored record is returned.
func (s *Service) UpdateTrade(ctx context.Context, userID string, id uint, in TradeInput) (*models.Trade, error) {
	in = in.normalize(s.today())
	if err := in.validate(); err != nil {
		return nil, err
	}
	trade := in.trade()
	trade.ID = id
	if err := s.store.UpdateTrade(ctx, userID, &trade); err != nil {
		return nil, err
	}
	return s.store.GetTrade(ctx, userID, id)
}

// DeleteTrade removes a trade.
func (s *Service) DeleteTrade(ctx context.Context, userID string, id uint) error {
	return s.store.DeleteTrade(ctx, userID, id)
}

// Stables lists the user's stablecoin balances.
func (s *Service) Stables(ctx context.Context, userID string) ([]models.StableBalance, error) {
	return s.store.ListStables(ctx, userID)
}

// AddStable records a new stablecoin balance.
func (s *Service) AddStable(ctx context.Context, userID, label string, amount float64) (*models.StableBalance, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return nil, invalid("label", "is required")
	}
	if !validAmount(amount, false) {
		return nil, invalid("amount", "must be greater than zero and at most 1e12")
	}
	sb := &models.StableBalance{Label: label, Amount: amount}
	if err := s.store.CreateStable(ctx, userID, sb); err != nil {
		return nil, err
	}
	return sb, nil
}

// SetStableAmount overwrites a balance.
func (s *Service) SetStableAmount(ctx context.Context, userID string, id uint, amount float64) error {
	if !validAmount(amount, true) {
		return invalid("amount", "must be between 0 and 1e12")
	}
	return s.store.UpdateStableAmount(ctx, userID, id, amount)
}

// RemoveStable deletes a balance.
func (s *Service) RemoveStable(ctx context.Context, userID string, id uint) error {
	return s.store.DeleteStable(ctx, userID, id)
}

// Contributions lists capital added over time, most recent first.
func (s *Service) Contributions(ctx context.Context, userID string) ([]models.Contribution, error) {
	return s.store.ListContributions(ctx, userID)
}

// AddContribution records capital added from outside.
func (s *Service) AddContribution(ctx context.Context, userID string, in ContributionInput) (*models.Contribution, error) {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.today()
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if !validAmount(in.Amount, false) {
		return nil, invalid("amount", "must be greater than zero and at most 1e12")
	}
	c := &models.Contribution{Date: date, Amount: in.Amount, Note: strings.TrimSpace(in.Note)}
	if err := s.store.CreateContribution(ctx, userID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Journal lists entries, newest first.
func (s *Service) Journal(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	return s.store.ListJournalEntries(ctx, userID)
}

// AddJournalEntry records today's reflection.
func (s *Service) AddJournalEntry(ctx context.Context, userID, text string) (*models.JournalEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalid("text", "is required")
	}
	e := &models.JournalEntry{Date: s.today(), Text: text}
	if err := s.store.CreateJournalEntry(ctx, userID, e); err != nil {
		return nil, err
	}
	return e, nil
}
