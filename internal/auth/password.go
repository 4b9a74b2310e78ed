package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing these invalidates no stored records: the
// stored digest is only ever compared against a recomputation with the same
// salt, and the parameters are part of this package's contract.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashPassword derives a storable password record from the username and
// plaintext password using Argon2id with a fresh random salt. The record is
// "hex(digest),hex(salt)". The username is mixed into the derivation so a
// digest can't be replayed across accounts sharing a password.
func HashPassword(username, password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return hashWithSalt(username, password, salt), nil
}

func hashWithSalt(username, password string, salt []byte) string {
	digest := argon2.IDKey([]byte(username+password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(digest) + "," + hex.EncodeToString(salt)
}

// VerifyPassword recomputes the digest with the record's stored salt and
// compares in constant time. Every failure mode (malformed record, wrong
// username, wrong password) takes the same path and returns false.
func VerifyPassword(username, password, stored string) bool {
	_, saltHex, found := strings.Cut(stored, ",")
	if !found {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	recomputed := hashWithSalt(username, password, salt)
	return subtle.ConstantTimeCompare([]byte(recomputed), []byte(stored)) == 1
}
