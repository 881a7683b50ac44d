package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/zkvault/internal/dbx"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/entries"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or *sql.Tx, so
// services can compose them inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
