package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/walletd/internal/server/models"
	"github.com/dmitrijs2005/walletd/internal/server/repositories/repomanager"
)

// LedgerService exposes read access to the append-only transaction log.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager) *LedgerService {
	return &LedgerService{db: db, repomanager: m}
}

// HistoryFor returns all records involving the user, newest first. Each
// call runs a fresh query, so repeated calls with no intervening transfer
// return identical results.
func (s *LedgerService) HistoryFor(ctx context.Context, username string) ([]*models.Transaction, error) {
	return s.repomanager.Transactions(s.db).HistoryFor(ctx, username)
}
