package tracker

import (
	"context"

	"bagbuilder-go/internal/models"
	"bagbuilder-go/internal/store"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of store.Store.
type MockStore struct {
	mock.Mock
}

var _ store.Store = (*MockStore)(nil)

func (m *MockStore) ListTrades(ctx context.Context, userID string) ([]models.Trade, error) {
	args := m.Called(ctx, userID)
	trades, _ := args.Get(0).([]models.Trade)
	return trades, args.Error(1)
}

func (m *MockStore) GetTrade(ctx context.Context, userID string, id uint) (*models.Trade, error) {
	args := m.Called(ctx, userID, id)
	t, _ := args.Get(0).(*models.Trade)
	return t, args.Error(1)
}

func (m *MockStore) CreateTrade(ctx context.Context, userID string, t *models.Trade) error {
	args := m.Called(ctx, userID, t)
	return args.Error(0)
}

func (m *MockStore) UpdateTrade(ctx context.Context, userID string, t *models.Trade) error {
	args := m.Called(ctx, userID, t)
	return args.Error(0)
}

func (m *MockStore) DeleteTrade(ctx context.Context, userID string, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockStore) ListStables(ctx context.Context, userID string) ([]models.StableBalance, error) {
	args := m.Called(ctx, userID)
	stables, _ := args.Get(0).([]models.StableBalance)
	return stables, args.Error(1)
}

func (m *MockStore) GetStable(ctx context.Context, userID string, id uint) (*models.StableBalance, error) {
	args := m.Called(ctx, userID, id)
	sb, _ := args.Get(0).(*models.StableBalance)
	return sb, args.Error(1)
}

func (m *MockStore) CreateStable(ctx context.Context, userID string, sb *models.StableBalance) error {
	args := m.Called(ctx, userID, sb)
	return args.Error(0)
}

func (m *MockStore) UpdateStableAmount(ctx context.Context, userID string, id uint, amount float64) error {
	args := m.Called(ctx, userID, id, amount)
	return args.Error(0)
}

func (m *MockStore) DeleteStable(ctx context.Context, userID string, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockStore) ListContributions(ctx context.Context, userID string) ([]models.Contribution, error) {
	args := m.Called(ctx, userID)
	contribs, _ := args.Get(0).([]models.Contribution)
	return contribs, args.Error(1)
}

func (m *MockStore) CreateContribution(ctx context.Context, userID string, c *models.Contribution) error {
	args := m.Called(ctx, userID, c)
	return args.Error(0)
}

func (m *MockStore) ListJournalEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	args := m.Called(ctx, userID)
	entries, _ := args.Get(0).([]models.JournalEntry)
	return entries, args.Error(1)
}

func (m *MockStore) CreateJournalEntry(ctx context.Context, userID string, e *models.JournalEntry) error {
	args := m.Called(ctx, userID, e)
	return args.Error(0)
}

func (m *MockStore) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	args := m.Called(ctx, userID)
	us, _ := args.Get(0).(*models.UserSettings)
	return us, args.Error(1)
}

func (m *MockStore) UpsertSettings(ctx context.Context, userID string, us *models.UserSettings) error {
	args := m.Called(ctx, userID, us)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
