// Package cryptox wraps password hashing for the user directory.
package cryptox

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when the configured cost is
// zero or out of range.
const DefaultCost = bcrypt.DefaultCost

// HashPassword hashes plaintext with bcrypt. A fresh salt is generated on
// every call, so two hashes of the same password never match byte-for-byte.
func HashPassword(plaintext []byte, cost int) ([]byte, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return bcrypt.GenerateFromPassword(plaintext, cost)
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
// A malformed or corrupt hash is treated as a mismatch, never an error:
// "does not match" is the only safe answer for an unreadable stored hash.
func VerifyPassword(plaintext, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, plaintext) == nil
}
