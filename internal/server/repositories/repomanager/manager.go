// Package repomanager defines the seam through which services obtain
// repositories. Binding repositories to a dbx.DBTX at the call site lets the
// same constructors serve both plain connections and open transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/walletd/internal/dbx"
	"github.com/dmitrijs2005/walletd/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/walletd/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations and runs schema
// migrations. Services hold a manager plus a *sql.DB instead of global
// handles, so tests can substitute fakes.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
