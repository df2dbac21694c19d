// Package app holds the business rules sitting between the HTTP layer and
// the entity store: uniqueness checks, soft-delete semantics, existence
// checks, and the listing pipelines.
package app

import (
	"fmt"

	"librarysvc/pkg/store"
)

// Config wires required dependencies for the core application.
type Config struct {
	DatabaseURL string
	Store       store.Store
}

// App is the core application service for books and users.
type App struct {
	store store.Store
}

// New constructs the application. When no store is injected it opens a
// Postgres-backed one from the configured DSN.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	return &App{store: dataStore}, nil
}
