// Package store is the persistence port of the journal. Every operation is
// scoped to one authenticated user; an empty user id is rejected before any
// backend is contacted.
package store

import (
	"context"
	"errors"
	"fmt"

	"bagbuilder-go/internal/models"
)

var (
	// ErrUnauthenticated is returned when an operation is attempted without a user id.
	ErrUnauthenticated = errors.New("no authenticated user")
	// ErrNotFound is returned when a record does not exist or belongs to another user.
	ErrNotFound = errors.New("record not found")
)

// PersistenceError wraps a backend failure.
type PersistenceError struct {
	Op     string // list, get, create, update, delete, upsert, ping
	Entity string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Store reads and writes one user's journal.
//
// Lists are ordered: trades and contributions most recent first (date, then
// id, descending), journal entries newest first, stables in creation order.
type Store interface {
	ListTrades(ctx context.Context, userID string) ([]models.Trade, error)
	GetTrade(ctx context.Context, userID string, id uint) (*models.Trade, error)
	CreateTrade(ctx context.Context, userID string, t *models.Trade) error
	UpdateTrade(ctx context.Context, userID string, t *models.Trade) error
	DeleteTrade(ctx context.Context, userID string, id uint) error

	ListStables(ctx context.Context, userID string) ([]models.StableBalance, error)
	GetStable(ctx context.Context, userID string, id uint) (*models.StableBalance, error)
	CreateStable(ctx context.Context, userID string, s *models.StableBalance) error
	UpdateStableAmount(ctx context.Context, userID string, id uint, amount float64) error
	DeleteStable(ctx context.Context, userID string, id uint) error

	ListContributions(ctx context.Context, userID string) ([]models.Contribution, error)
	CreateContribution(ctx context.Context, userID string, c *models.Contribution) error

	ListJournalEntries(ctx context.Context, userID string) ([]models.JournalEntry, error)
	CreateJournalEntry(ctx context.Context, userID string, e *models.JournalEntry) error

	// GetSettings returns ErrNotFound until the user has been onboarded.
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	UpsertSettings(ctx context.Context, userID string, s *models.UserSettings) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

const (
	entityTrade        = "trade"
	entityStable       = "stable balance"
	entityContribution = "contribution"
	entityJournal      = "journal entry"
	entitySettings     = "user settings"
)

func persistErr(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Entity: entity, Err: err}
}

func requireUser(userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	return nil
}
