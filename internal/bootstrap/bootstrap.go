// Package bootstrap wires the storage layer and the services together.
// Both front ends run through the same sequence: open the database,
// apply migrations, make sure an admin account exists.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"todokeeper/internal/access"
	"todokeeper/internal/config"
	"todokeeper/internal/logging"
	"todokeeper/internal/repositories/repomanager"
	"todokeeper/internal/services"
)

type Backend struct {
	DB     *sql.DB
	Logger logging.Logger

	Auth       *services.AuthService
	Accounts   *services.AccountService
	Tasks      *services.TaskService
	Categories *services.CategoryService
}

func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	manager := repomanager.NewPostgresRepositoryManager()
	if err := manager.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	policy := &access.Policy{AllowAdminOnAdmin: cfg.AllowAdminOnAdmin}

	b := &Backend{
		DB:         db,
		Logger:     logger,
		Auth:       services.NewAuthService(db, manager, cfg, logger),
		Accounts:   services.NewAccountService(db, manager, policy, logger),
		Tasks:      services.NewTaskService(db, manager, policy),
		Categories: services.NewCategoryService(db, manager),
	}

	created, err := b.Auth.EnsureBootstrapAdmin(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrapping admin account: %w", err)
	}
	if created {
		logger.Info(ctx, "created bootstrap admin account", "alias", cfg.BootstrapAlias)
	}

	return b, nil
}

func (b *Backend) Close() error {
	return b.DB.Close()
}
