package repomanager

import (
	"context"
	"database/sql"

	"github.com/akosarev/taskvault/internal/dbx"
	"github.com/akosarev/taskvault/internal/server/repositories/files"
	"github.com/akosarev/taskvault/internal/server/repositories/tasks"
	"github.com/akosarev/taskvault/internal/server/repositories/tokens"
	"github.com/akosarev/taskvault/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Files(db dbx.DBTX) files.Repository
}
