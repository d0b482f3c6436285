package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/storage/boltdb"
	"github.com/vladislavdragonenkov/sales/internal/storage/memory"
	"github.com/vladislavdragonenkov/sales/internal/storage/postgres"
)

// storage — выбранная реализация репозитория и проверка его доступности.
type storage struct {
	repo domain.SaleRepository
	ping func(ctx context.Context) error
}

func alwaysUp(context.Context) error { return nil }

func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (storage, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Info("используем in-memory хранилище продаж")
		return storage{repo: memory.NewSaleRepository(), ping: alwaysUp}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return storage{}, fmt.Errorf("postgres dsn is required")
		}
		pool := postgres.DefaultPoolConfig()
		pool.MaxOpenConns = cfg.PostgresMaxConns
		pool.MaxIdleConns = cfg.PostgresMaxConns
		store, err := postgres.Open(ctx, cfg.PostgresDSN, pool)
		if err != nil {
			return storage{}, err
		}
		logger.Info("подключились к PostgreSQL")
		return storage{repo: postgres.NewSaleRepository(store), ping: store.Ping}, nil

	case StorageDriverBolt:
		repo, err := boltdb.Open(cfg.BoltPath)
		if err != nil {
			return storage{}, err
		}
		logger.WithField("path", cfg.BoltPath).Info("используем BoltDB хранилище продаж")
		return storage{repo: repo, ping: alwaysUp}, nil

	default:
		return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
