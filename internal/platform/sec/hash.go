// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// The input is NFKC-normalized first (RFC 8265 OpaqueString profile) so that
// visually identical Unicode passwords typed on different keyboards produce
// the same digest. Default cost balances security and CPU utilization
// during registration spikes.
func HashPassword(plainTextPassword string) (string, error) {
	normalized := norm.NFKC.String(plainTextPassword)

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(normalized), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// bcrypt performs the comparison in constant time, preventing timing attacks.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	normalized := norm.NFKC.String(plainTextPassword)

	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(normalized))
	return err == nil
}
