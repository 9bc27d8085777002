// Package models holds the persisted row types shared by repositories and
// services on the server side.
package models

import "github.com/shopspring/decimal"

// User is one row of the users table. Username is unique and immutable once
// created; Balance is only ever mutated by the transfer engine inside an
// atomic unit and never goes negative.
type User struct {
	ID             int64
	Username       string
	PasswordDigest []byte
	Salt           []byte
	Balance        decimal.Decimal
	IsAdmin        bool
}
