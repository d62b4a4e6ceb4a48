package store

import (
	"context"
	"errors"

	"bagbuilder-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps the journal in a SQL database.
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// ensure GormStore implements the interface
var _ Store = (*GormStore)(nil)

// NewGormStore creates a store on an already migrated database.
func NewGormStore(db *gorm.DB, logger *zap.Logger) *GormStore {
	return &GormStore{db: db, logger: logger.Named("gorm_store")}
}

// scoped returns a query restricted to the user's rows.
func (s *GormStore) scoped(ctx context.Context, userID string) (*gorm.DB, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).Where("user_id = ?", userID), nil
}

func (s *GormStore) ListTrades(ctx context.Context, userID string) ([]models.Trade, error) {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var trades []models.Trade
	if err := q.Order("date desc, id desc").Find(&trades).Error; err != nil {
		return nil, persistErr("list", entityTrade+"s", err)
	}
	return trades, nil
}

func (s *GormStore) GetTrade(ctx context.Context, userID string, id uint) (*models.Trade, error) {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var t models.Trade
	if err := q.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, notFoundOr("get", entityTrade, err)
	}
	return &t, nil
}

func (s *GormStore) CreateTrade(ctx context.Context, userID string, t *models.Trade) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	t.ID = 0
	t.UserID = userID
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return persistErr("create", entityTrade, err)
	}
	s.logger.Debug("Created trade", zap.String("user_id", userID), zap.Uint("id", t.ID), zap.String("coin", t.Coin))
	return nil
}

func (s *GormStore) UpdateTrade(ctx context.Context, userID string, t *models.Trade) error {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return err
	}
	t.UserID = userID
	res := q.Model(&models.Trade{}).
		Where("id = ?", t.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(t)
	return affected("update", entityTrade, res)
}

func (s *GormStore) DeleteTrade(ctx context.Context, userID string, id uint) error {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return err
	}
	return affected("delete", entityTrade, q.Where("id = ?", id).Delete(&models.Trade{}))
}

func (s *GormStore) ListStables(ctx context.Context, userID string) ([]models.StableBalance, error) {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var stables []models.StableBalance
	if err := q.Order("id asc").Find(&stables).Error; err != nil {
		return nil, persistErr("list", "stable balances", err)
	}
	return stables, nil
}

func (s *GormStore) GetStable(ctx context.Context, userID string, id uint) (*models.StableBalance, error) {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var sb models.StableBalance
	if err := q.Where("id = ?", id).First(&sb).Error; err != nil {
		return nil, notFoundOr("get", entityStable, err)
	}
	return &sb, nil
}

func (s *GormStore) CreateStable(ctx context.Context, userID string, sb *models.StableBalance) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	sb.ID = 0
	sb.UserID = userID
	return persistErr("create", entityStable, s.db.WithContext(ctx).Create(sb).Error)
}

func (s *GormStore) UpdateStableAmount(ctx context.Context, userID string, id uint, amount float64) error {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return err
	}
	res := q.Model(&models.StableBalance{}).Where("id = ?", id).Update("amount", amount)
	return affected("update", entityStable, res)
}

func (s *GormStore) DeleteStable(ctx context.Context, userID string, id uint) error {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return err
	}
	return affected("delete", entityStable, q.Where("id = ?", id).Delete(&models.StableBalance{}))
}

func (s *GormStore) ListContributions(ctx context.Context, userID string) ([]models.Contribution, error) {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var contribs []models.Contribution
	if err := q.Order("date desc, id desc").Find(&contribs).Error; err != nil {
		return nil, persistErr("list", entityContribution+"s", err)
	}
	return contribs, nil
}

func (s *GormStore) CreateContribution(ctx context.Context, userID string, c *models.Contribution) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	c.ID = 0
	c.UserID = userID
	return persistErr("create", entityContribution, s.db.WithContext(ctx).Create(c).Error)
}

func (s *GormStore) ListJournalEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var entries []models.JournalEntry
	if err := q.Order("created_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, persistErr("list", "journal entries", err)
	}
	return entries, nil
}

func (s *GormStore) CreateJournalEntry(ctx context.Context, userID string, e *models.JournalEntry) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	e.ID = 0
	e.UserID = userID
	return persistErr("create", entityJournal, s.db.WithContext(ctx).Create(e).Error)
}

func (s *GormStore) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	q, err := s.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var us models.UserSettings
	if err := q.First(&us).Error; err != nil {
		return nil, notFoundOr("get", entitySettings, err)
	}
	return &us, nil
}

func (s *GormStore) UpsertSettings(ctx context.Context, userID string, us *models.UserSettings) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	us.ID = 0
	us.UserID = userID
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "profile_label", "profile_data", "emergency_fund", "updated_at"}),
	}).Create(us).Error
	return persistErr("upsert", entitySettings, err)
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return persistErr("ping", "database", err)
	}
	return persistErr("ping", "database", sqlDB.PingContext(ctx))
}

func notFoundOr(op, entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return persistErr(op, entity, err)
}

// affected maps a write that matched no row to ErrNotFound.
func affected(op, entity string, res *gorm.DB) error {
	if res.Error != nil {
		return persistErr(op, entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
