// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

/*
Package auth implements the user identity and session lifecycle layer.

It defines the core domain entities (User, Session, VerificationCode) and the
flow engine for registration, login, token refresh, email verification, and
password recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
external dependencies and encapsulate all business rules related to the
session/token lifecycle.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered account.
//
// The password digest is explicitly omitted from JSON: the API contract is
// that no response ever carries it, enforced here at the type level rather
// than by ad-hoc field stripping.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents one authenticated device/browser instance.
//
// Expiry is absolute: once ExpiresAt passes, the session is invalid at read
// time. There is no background sweep, so every store query is time-bound.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserAgent string    `json:"user_agent"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionInfo is the projection returned when listing a user's sessions.
//
// It deliberately excludes ExpiresAt and UserID: clients only need to
// recognize their devices and spot the current one.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
	IsCurrent bool      `json:"is_current,omitempty"`
}

// CodeType discriminates the two one-time verification code purposes.
type CodeType string

const (
	// CodeEmailVerification confirms ownership of a registered email address.
	CodeEmailVerification CodeType = "email_verification"

	// CodePasswordReset authorizes a single password reset.
	CodePasswordReset CodeType = "password_reset"
)

// VerificationCode is a one-time-use, id-keyed token record.
//
// A code is single-use: it is deleted immediately upon successful
// consumption. A code of the wrong type or past its expiry never validates.
type VerificationCode struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      CodeType  `json:"type"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Field names used for validation details in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldCode            = "verificationCode"
	FieldSessionID       = "id"
)
