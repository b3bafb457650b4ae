// Package password is the credential subsystem: a one-way transformation of
// plaintext passwords into storage-safe bcrypt hashes, and verification of a
// plaintext candidate against a stored hash.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor. bcrypt.DefaultCost is 10.
const Cost = bcrypt.DefaultCost

// Hash returns a salted bcrypt hash of plaintext. A fresh salt is generated
// on every call, so hashing the same input twice yields different hashes.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext is the input that produced hash. A
// mismatch returns false, never an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
