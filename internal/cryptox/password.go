// Package cryptox implements the password hashing primitives used by the
// credential store: salted key-stretching digests (PBKDF2-HMAC-SHA256) and
// constant-time verification.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/walletd/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the width of a freshly generated salt in bytes.
	SaltSize = 16
	// DigestSize is the width of a derived password digest in bytes.
	DigestSize = 64
	// Iterations is the fixed PBKDF2 iteration count.
	Iterations = 100000
)

// dummySalt is used to derive a throwaway digest for unknown usernames so
// verification takes comparable time whether or not the account exists.
var dummySalt = make([]byte, SaltSize)

// RandomSalt returns a fresh random salt of SaltSize bytes.
func RandomSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveDigest stretches the password with the given salt into a fixed-width
// digest.
func DeriveDigest(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, DigestSize, sha256.New)
}

// VerifyDigest recomputes the digest for the candidate password and compares
// it against the stored digest in constant time.
func VerifyDigest(password string, salt, storedDigest []byte) bool {
	candidate := DeriveDigest(password, salt)
	return subtle.ConstantTimeCompare(candidate, storedDigest) == 1
}

// DummyVerify burns one digest derivation against a fixed salt and always
// returns false. Called when the username does not exist, so a login attempt
// cannot learn account existence from response timing.
func DummyVerify(password string) bool {
	_ = DeriveDigest(password, dummySalt)
	return false
}
