// Package auth implements password hashing and bearer token issuance and
// verification for the API.
package auth

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor applied to new password hashes.
const HashCost = 10

// HashPassword returns a salted bcrypt digest of the plaintext password.
// The salt is random per call, so hashing the same password twice yields
// different digests.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// digest. Any mismatch, including a corrupted digest, yields false rather
// than an error.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
