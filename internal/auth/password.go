// Package auth implements password hashing and bearer token issuance for user credentials.
package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	iterations = 10000
	keyLength  = 512
)

// HashPassword derives a hex-encoded PBKDF2-SHA512 digest of password using a fresh random salt.
// The returned salt must be stored next to the hash.
func HashPassword(password string) (hash, salt string, err error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(buf)
	return derive(password, salt), salt, nil
}

// VerifyPassword reports whether password produces hash under salt.
func VerifyPassword(password, hash, salt string) bool {
	if hash == "" || salt == "" {
		return false
	}
	computed := derive(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	return hex.EncodeToString(key)
}
