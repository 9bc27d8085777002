// Package services contains server-side business logic: account management,
// the atomic transfer engine, and admin reporting.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/walletd/internal/common"
	"github.com/dmitrijs2005/walletd/internal/cryptox"
	"github.com/dmitrijs2005/walletd/internal/server/config"
	"github.com/dmitrijs2005/walletd/internal/server/models"
	"github.com/dmitrijs2005/walletd/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// AccountService implements the credential-store operations: signup,
// password verification, balance lookup, and the admin check.
type AccountService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	startingBalance decimal.Decimal
}

// NewAccountService constructs an AccountService using repositories and
// server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:              db,
		repomanager:     m,
		startingBalance: cfg.StartingBalance,
	}
}

// SignUp creates a new user with a fresh random salt, a stretched password
// digest, and the configured starting balance. The uniqueness check is
// atomic with the insert (DB constraint), so concurrent signups of the same
// username cannot both succeed.
func (s *AccountService) SignUp(ctx context.Context, username, password string) error {
	salt := cryptox.RandomSalt()
	user := &models.User{
		Username:       username,
		PasswordDigest: cryptox.DeriveDigest(password, salt),
		Salt:           salt,
		Balance:        s.startingBalance,
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// Verify checks the password against the stored digest in constant time.
// When the username does not exist a dummy digest is computed against a
// fixed salt, so the call takes comparable time either way and response
// timing does not leak account existence.
func (s *AccountService) Verify(ctx context.Context, username, password string) (bool, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return cryptox.DummyVerify(password), nil
		}
		return false, common.ErrorInternal
	}
	return cryptox.VerifyDigest(password, user.Salt, user.PasswordDigest), nil
}

// Balance returns the user's current balance.
func (s *AccountService) Balance(ctx context.Context, username string) (decimal.Decimal, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetBalance(ctx, username)
}

// IsAdmin reports whether the user holds the admin flag. An unknown
// username is never an admin.
func (s *AccountService) IsAdmin(ctx context.Context, username string) (bool, error) {
	repo := s.repomanager.Users(s.db)
	isAdmin, err := repo.IsAdmin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return isAdmin, nil
}
