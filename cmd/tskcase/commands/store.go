package commands

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/codacy-badger/sleuthkit/internal/casedb"
	"github.com/codacy-badger/sleuthkit/internal/config"
	"github.com/codacy-badger/sleuthkit/internal/printer"
)

// openStore loads the case configuration and connects to the case store,
// verifying Redis connectivity before returning. Callers own the returned
// store and must Close() it.
func openStore(ctx context.Context) (*casedb.Store, *config.CaseConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, printer.Error(
			"failed to load case configuration",
			fmt.Sprintf("Error: %v", err),
			[]string{
				fmt.Sprintf("Check that %s exists and is valid", configPath),
				"Create one with:\n  tskcase init",
			},
		)
	}

	store, err := casedb.NewStore(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Case.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create case store: %w", err)
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, printer.Error(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s: %v", cfg.Redis.Addr, err),
			[]string{"Check that the Redis server is running and the address in case.yml is correct"},
		)
	}

	return store, cfg, nil
}
