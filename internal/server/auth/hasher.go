// Package auth provides the credential hashing and token codec primitives
// used by the identity service.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/akosarev/taskvault/internal/common"
)

// HashPassword derives a storable hash from a plaintext password using bcrypt.
// bcrypt embeds a random salt, so two calls with the same plaintext produce
// different hashes that both verify.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", common.ErrorValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash. It never
// returns an error: a malformed hash simply fails verification. bcrypt's
// comparison does not short-circuit on the secret material.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
