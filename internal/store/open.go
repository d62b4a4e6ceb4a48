package store

import (
	"fmt"

	"bagbuilder-go/internal/config"
	"bagbuilder-go/internal/database"

	"go.uber.org/zap"
)

// Open creates the store selected by storage.backend.
func Open(cfg config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageRemote:
		logger.Info("Using remote storage backend", zap.String("base_url", cfg.Backend.BaseURL))
		return NewRemoteStore(cfg.Backend, logger), nil
	case config.StorageDatabase, "":
		db, err := database.NewDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("Using database storage backend", zap.String("driver", cfg.Database.Driver))
		return NewGormStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
