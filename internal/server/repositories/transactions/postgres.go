package transactions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/walletd/internal/dbx"
	"github.com/dmitrijs2005/walletd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, record *models.Transaction) (*models.Transaction, error) {

	query :=
		`INSERT INTO transactions (sender, receiver, amount)
         VALUES ($1, $2, $3)
		 RETURNING id, timestamp
		 `

	err := r.db.QueryRowContext(ctx, query,
		record.Sender, record.Receiver, record.Amount).Scan(&record.ID, &record.Timestamp)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) HistoryFor(ctx context.Context, username string) ([]*models.Transaction, error) {
	query :=
		`SELECT id, sender, receiver, amount, timestamp FROM transactions
		 WHERE sender = $1 OR receiver = $1
		 ORDER BY timestamp DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		record := &models.Transaction{}
		if err := rows.Scan(&record.ID, &record.Sender, &record.Receiver, &record.Amount, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) TopSenders(ctx context.Context, limit int) ([]*models.SenderStat, error) {
	query :=
		`SELECT sender, COUNT(*) AS txn_count FROM transactions
		 GROUP BY sender
		 ORDER BY txn_count DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SenderStat
	for rows.Next() {
		stat := &models.SenderStat{}
		if err := rows.Scan(&stat.Sender, &stat.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
