package storage

import (
	"context"
	"fmt"

	"janken/config"
)

// Open builds the store selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config) (TallyStore, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory, "":
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.Store.FilePath), nil
	case config.BackendRedis:
		s, err := NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("open redis store at %s: %w", cfg.Redis.Addr, err)
		}
		return s, nil
	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("open postgres store: DATABASE_URL is not set")
		}
		s, err := NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
