// Package transactions contains the ledger repository: the append-only log
// of committed transfers.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/walletd/internal/server/models"
)

// Repository is the storage contract for ledger records. Append is the only
// write; records are never mutated or deleted.
type Repository interface {
	Append(ctx context.Context, record *models.Transaction) (*models.Transaction, error)

	// HistoryFor returns all records where the user is sender or receiver,
	// newest first. Each call runs a fresh query.
	HistoryFor(ctx context.Context, username string) ([]*models.Transaction, error)

	Count(ctx context.Context) (int64, error)
	TopSenders(ctx context.Context, limit int) ([]*models.SenderStat, error)
}
