// Package auth contains authentication and authorization logic: password
// hashing, bearer-token issuance and verification, the request middleware
// that enforces authentication, and the ownership check used by mutating
// endpoints.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/user/blogger-go/apperror"
)

// bcryptCost is the work factor applied to every stored password digest.
const bcryptCost = 12

// HashPassword produces a salted bcrypt digest of the plaintext password.
// Each call yields a distinct digest even for identical input. Failure here
// is unexpected and surfaces as an internal error.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// digest. The salt and work factor are recovered from the digest itself and
// the comparison is constant-time. A mismatch is a plain false, never an
// error.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
