// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package token issues and verifies banner possession tokens. A token is
// handed to the client once at creation; only its bcrypt hash is stored.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// byteLength is the number of random bytes in a token (64 hex chars).
const byteLength = 32

// Generate returns a new random token encoded as lowercase hex.
func Generate() (string, error) {
	b := make([]byte, byteLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hash returns the bcrypt hash of a token for storage.
func Hash(tok string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(tok), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether tok matches the stored hash.
func Compare(hash, tok string) bool {
	if hash == "" || tok == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(tok)) == nil
}
