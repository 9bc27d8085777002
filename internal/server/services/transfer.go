package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/walletd/internal/common"
	"github.com/dmitrijs2005/walletd/internal/dbx"
	"github.com/dmitrijs2005/walletd/internal/server/models"
	"github.com/dmitrijs2005/walletd/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// TransferService is the transfer engine: it moves funds between two
// accounts and appends the ledger record as one atomic unit.
type TransferService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTransferService constructs a TransferService.
func NewTransferService(db *sql.DB, m repomanager.RepositoryManager) *TransferService {
	return &TransferService{db: db, repomanager: m}
}

// Transfer moves amount from sender to receiver and returns the sender's
// post-transfer balance.
//
// The balance pre-check outside the transaction is advisory only (fail fast
// without opening a doomed unit). The authoritative check is the guarded
// debit inside the unit: under concurrent transfers from the same sender,
// at most the funded subset commits and the rest fail with
// ErrInsufficientFunds, leaving the balance untouched.
//
// Self-transfer (sender == receiver) is permitted and logged in the ledger;
// the post-transfer balance is re-read inside the unit so the response is
// correct in that case too.
//
// Failures: ErrNonPositiveAmount, ErrUnknownAccount (sender or receiver),
// ErrInsufficientFunds, or a wrapped storage error. Any in-unit failure
// rolls back in full; no partial balance change or orphan ledger record
// survives.
func (s *TransferService) Transfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Decimal{}, common.ErrNonPositiveAmount
	}

	repo := s.repomanager.Users(s.db)
	balance, err := repo.GetBalance(ctx, sender)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return decimal.Decimal{}, common.ErrUnknownAccount
		}
		return decimal.Decimal{}, err
	}
	if balance.LessThan(amount) {
		return decimal.Decimal{}, common.ErrInsufficientFunds
	}

	var newBalance decimal.Decimal
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersTx := s.repomanager.Users(tx)

		if _, err := usersTx.Debit(ctx, sender, amount); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUnknownAccount
			}
			return err
		}

		if err := usersTx.Credit(ctx, receiver, amount); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUnknownAccount
			}
			return err
		}

		record := &models.Transaction{Sender: sender, Receiver: receiver, Amount: amount}
		if _, err := s.repomanager.Transactions(tx).Append(ctx, record); err != nil {
			return err
		}

		b, err := usersTx.GetBalance(ctx, sender)
		if err != nil {
			return err
		}
		newBalance = b
		return nil
	}); err != nil {
		return decimal.Decimal{}, err
	}

	return newBalance, nil
}
