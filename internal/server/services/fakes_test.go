package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/walletd/internal/dbx"
	"github.com/dmitrijs2005/walletd/internal/server/models"
	transactionsrepo "github.com/dmitrijs2005/walletd/internal/server/repositories/transactions"
	usersrepo "github.com/dmitrijs2005/walletd/internal/server/repositories/users"
	"github.com/shopspring/decimal"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	createIn  *models.User
	createErr error

	getOut *models.User
	getErr error

	// balances are consumed one per GetBalance call; the last value repeats.
	balances   []decimal.Decimal
	balanceErr error

	isAdminOut bool
	isAdminErr error

	debitOut   decimal.Decimal
	debitErr   error
	debitCalls int

	creditErr   error
	creditCalls int

	listOut  []*models.User
	countOut int64
	sumOut   decimal.Decimal
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createIn = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetBalance(ctx context.Context, username string) (decimal.Decimal, error) {
	if f.balanceErr != nil {
		return decimal.Decimal{}, f.balanceErr
	}
	if len(f.balances) == 0 {
		return decimal.Decimal{}, nil
	}
	b := f.balances[0]
	if len(f.balances) > 1 {
		f.balances = f.balances[1:]
	}
	return b, nil
}

func (f *fakeUsersRepo) IsAdmin(ctx context.Context, username string) (bool, error) {
	if f.isAdminErr != nil {
		return false, f.isAdminErr
	}
	return f.isAdminOut, nil
}

func (f *fakeUsersRepo) Debit(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	f.debitCalls++
	if f.debitErr != nil {
		return decimal.Decimal{}, f.debitErr
	}
	return f.debitOut, nil
}

func (f *fakeUsersRepo) Credit(ctx context.Context, username string, amount decimal.Decimal) error {
	f.creditCalls++
	return f.creditErr
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, nil
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	return f.countOut, nil
}

func (f *fakeUsersRepo) SumBalances(ctx context.Context) (decimal.Decimal, error) {
	return f.sumOut, nil
}

type fakeTransactionsRepo struct {
	appended  []*models.Transaction
	appendErr error

	historyOut []*models.Transaction
	historyErr error

	countOut int64
	topOut   []*models.SenderStat
}

func (f *fakeTransactionsRepo) Append(ctx context.Context, rec *models.Transaction) (*models.Transaction, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	f.appended = append(f.appended, rec)
	return rec, nil
}

func (f *fakeTransactionsRepo) HistoryFor(ctx context.Context, username string) ([]*models.Transaction, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.historyOut, nil
}

func (f *fakeTransactionsRepo) Count(ctx context.Context) (int64, error) {
	return f.countOut, nil
}

func (f *fakeTransactionsRepo) TopSenders(ctx context.Context, limit int) ([]*models.SenderStat, error) {
	return f.topOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTransactionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }

func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactionsrepo.Repository { return m.t }
