// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package credential issues initial account credentials.
//
// This is deliberately a placeholder integration point: the generated
// password exists only to bridge the gap until the user's first login,
// at which point the expiry marker forces a rotation. A deployment with
// a real identity provider should replace NewInitial with issuance
// against that provider.
package credential

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Initial is a freshly issued first-login credential. Plaintext is
// surfaced to the operator exactly once and never written to logs;
// Hash is a crypt(3)-compatible bcrypt hash suitable for useradd
// --password (libxcrypt accepts $2b$ hashes in the shadow file).
type Initial struct {
	Plaintext string
	Hash      string
}

// NewInitial generates a random initial password and its bcrypt hash.
func NewInitial() (Initial, error) {
	raw := make([]byte, 12)
	if _, err := rand.Read(raw); err != nil {
		return Initial{}, fmt.Errorf("generating initial password: %w", err)
	}
	plaintext := hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return Initial{}, fmt.Errorf("hashing initial password: %w", err)
	}

	return Initial{Plaintext: plaintext, Hash: string(hash)}, nil
}
