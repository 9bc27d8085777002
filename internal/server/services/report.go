package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/walletd/internal/server/models"
	"github.com/dmitrijs2005/walletd/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// topSendersLimit caps the "most active senders" section of the admin report.
const topSendersLimit = 3

// Stats is the admin aggregate report. Values reflect a recent but not
// necessarily instantaneous snapshot; the queries run outside any
// transaction because the report is advisory, not ledger-authoritative.
type Stats struct {
	TotalUsers        int64
	TotalBalance      decimal.Decimal
	TotalTransactions int64
	TopSenders        []*models.SenderStat
}

// UserReport is one entry of the full user dump: identity, balance, and the
// user's transaction history, newest first. Password material is never
// included.
type UserReport struct {
	Username string
	Balance  decimal.Decimal
	IsAdmin  bool
	History  []*models.Transaction
}

// ReportService produces read-only admin aggregates over the stores.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewReportService constructs a ReportService.
func NewReportService(db *sql.DB, m repomanager.RepositoryManager) *ReportService {
	return &ReportService{db: db, repomanager: m}
}

// Stats returns totals across users and the ledger plus the most active
// senders by transaction count.
func (s *ReportService) Stats(ctx context.Context) (*Stats, error) {
	usersRepo := s.repomanager.Users(s.db)
	txRepo := s.repomanager.Transactions(s.db)

	totalUsers, err := usersRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBalance, err := usersRepo.SumBalances(ctx)
	if err != nil {
		return nil, err
	}
	totalTransactions, err := txRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	topSenders, err := txRepo.TopSenders(ctx, topSendersLimit)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:        totalUsers,
		TotalBalance:      totalBalance,
		TotalTransactions: totalTransactions,
		TopSenders:        topSenders,
	}, nil
}

// AllUsers returns every user with their balance and full history.
func (s *ReportService) AllUsers(ctx context.Context) ([]*UserReport, error) {
	usersRepo := s.repomanager.Users(s.db)
	txRepo := s.repomanager.Transactions(s.db)

	users, err := usersRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*UserReport, 0, len(users))
	for _, u := range users {
		history, err := txRepo.HistoryFor(ctx, u.Username)
		if err != nil {
			return nil, err
		}
		reports = append(reports, &UserReport{
			Username: u.Username,
			Balance:  u.Balance,
			IsAdmin:  u.IsAdmin,
			History:  history,
		})
	}

	return reports, nil
}
