package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row of the append-only ledger. Rows are created exactly
// once per committed transfer and never mutated or deleted. Timestamp is
// assigned by the database at insertion.
type Transaction struct {
	ID        int64
	Sender    string
	Receiver  string
	Amount    decimal.Decimal
	Timestamp time.Time
}

// SenderStat is an aggregate used by the admin report: how many transfers a
// user has sent.
type SenderStat struct {
	Sender string
	Count  int64
}
