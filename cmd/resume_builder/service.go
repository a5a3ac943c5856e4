package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/kvstore"
	"github.com/jonathan/resume-builder/internal/persistence"
)

// newPersistenceService wires the persistence layer used by the client-side
// commands. The fallback store is Redis when REDIS_HOST is set, otherwise a
// file store under the profile directory. The loaded configuration is
// returned alongside for commands that need more than persistence.
func newPersistenceService(ctx context.Context) (*persistence.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var store kvstore.Store
	if os.Getenv("REDIS_HOST") != "" {
		redisStore, err := kvstore.NewRedis(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = redisStore
	} else {
		fileStore, err := kvstore.NewFile(cfg.ProfileDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open profile store: %w", err)
		}
		store = fileStore
	}

	svc := persistence.NewService(persistence.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Store:   store,
	})
	return svc, cfg, nil
}
