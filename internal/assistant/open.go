package assistant

import (
	"fmt"

	"github.com/23sarma/Life-os/internal/config"
	"github.com/23sarma/Life-os/internal/store"
)

// OpenStore opens the item store selected by the storage config.
func OpenStore(cfg config.StorageConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "sqlite":
		return store.NewSQLiteStore(cfg.Path)
	case "redis":
		return store.NewRedisStore(store.RedisOptions{
			URL:       cfg.RedisURL,
			KeyPrefix: cfg.KeyPrefix,
		})
	case "memory":
		return store.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
