package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/walletd/internal/common"
	"github.com/dmitrijs2005/walletd/internal/dbx"
	"github.com/dmitrijs2005/walletd/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations, used to detect a taken username atomically with the insert.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, password_digest, salt, balance)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordDigest, user.Salt, user.Balance).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, password_digest, salt, balance, is_admin FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordDigest, &user.Salt, &user.Balance, &user.IsAdmin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetBalance(ctx context.Context, username string) (decimal.Decimal, error) {
	query :=
		`SELECT balance FROM users
		 WHERE username = $1
		 `

	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, username).Scan(&balance)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Decimal{}, common.ErrorNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("db error: %w", err)
	}

	return balance, nil
}

func (r *PostgresRepository) IsAdmin(ctx context.Context, username string) (bool, error) {
	query :=
		`SELECT is_admin FROM users
		 WHERE username = $1
		 `

	var isAdmin bool
	err := r.db.QueryRowContext(ctx, query, username).Scan(&isAdmin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, common.ErrorNotFound
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	return isAdmin, nil
}

// Debit subtracts amount from the sender's balance. The WHERE clause is the
// authoritative funds-sufficiency check: when the balance is too low no row
// matches and the update is a no-op, so two racing transfers can never drive
// the balance negative.
func (r *PostgresRepository) Debit(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	query :=
		`UPDATE users SET balance = balance - $1
		 WHERE username = $2 AND balance >= $1
		 RETURNING balance
		 `

	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, amount, username).Scan(&balance)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No row matched: either the user is missing or underfunded.
			if _, lookupErr := r.GetBalance(ctx, username); errors.Is(lookupErr, common.ErrorNotFound) {
				return decimal.Decimal{}, common.ErrorNotFound
			}
			return decimal.Decimal{}, common.ErrInsufficientFunds
		}
		return decimal.Decimal{}, fmt.Errorf("db error: %w", err)
	}

	return balance, nil
}

func (r *PostgresRepository) Credit(ctx context.Context, username string, amount decimal.Decimal) error {
	query :=
		`UPDATE users SET balance = balance + $1
		 WHERE username = $2
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, amount, username).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, username, balance, is_admin FROM users
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Balance, &user.IsAdmin); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) SumBalances(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(balance), 0) FROM users`).Scan(&sum)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("db error: %w", err)
	}
	return sum, nil
}
