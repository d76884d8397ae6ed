// Package utils provides utility functions for the application.
package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// HashPassword derives the stored credential from a plaintext password.
//
// The credential is the hex-encoded SHA3-256 of the password bytes — unsalted
// and fixed-cost, which keeps stored credentials compatible with the existing
// user table. A future credential format change should move to a salted KDF;
// doing so silently here would invalidate every stored password.
func HashPassword(plaintext string) string {
	sum := sha3.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether the plaintext password matches the stored
// credential. Comparison is constant-time.
func VerifyPassword(plaintext, credential string) bool {
	hashed := HashPassword(plaintext)
	return subtle.ConstantTimeCompare([]byte(hashed), []byte(credential)) == 1
}

// GenerateSessionToken returns a new opaque session token: SessionTokenBytes
// of cryptographic randomness, hex-encoded.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
