package repomanager

import (
	"context"
	"database/sql"

	"todokeeper/internal/dbx"
	"todokeeper/internal/repositories/accounts"
	"todokeeper/internal/repositories/categories"
	"todokeeper/internal/repositories/tasks"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Categories(db dbx.DBTX) categories.Repository
}
