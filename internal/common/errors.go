// Package common defines shared constants and sentinel errors used across
// client and server layers of walletd. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Ledger errors surfaced by the credential store and transfer engine.
	ErrUsernameTaken     = errors.New("username taken")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownAccount    = errors.New("unknown account")
	ErrNonPositiveAmount = errors.New("non-positive amount")
)
