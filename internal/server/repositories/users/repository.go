// Package users contains the credential-store repository: user rows with
// salted password digests, balances, and the admin flag.
package users

import (
	"context"

	"github.com/dmitrijs2005/walletd/internal/server/models"
	"github.com/shopspring/decimal"
)

// Repository is the storage contract for user rows. Debit and Credit are
// only ever called by the transfer engine inside an atomic unit; the other
// operations are single-statement reads or inserts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetBalance(ctx context.Context, username string) (decimal.Decimal, error)
	IsAdmin(ctx context.Context, username string) (bool, error)

	// Debit subtracts amount from the user's balance, guarded so the result
	// can never go negative. Returns the new balance.
	Debit(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error)

	// Credit adds amount to the user's balance.
	Credit(ctx context.Context, username string, amount decimal.Decimal) error

	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	SumBalances(ctx context.Context) (decimal.Decimal, error)
}
