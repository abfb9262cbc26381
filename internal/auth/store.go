// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (including unique-email violations)
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password digest.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		MarkVerified flips the user's verified flag to true.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkVerified(context context.Context, userID string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for device sessions.
//
// Expiry is enforced at read time: every lookup of a "live" session carries
// an expiresat > now() predicate, so lapsed rows are invisible without any
// background sweep.
type SessionRepository interface {

	/*
		Create persists a new session for an authenticated login.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByID returns the session with the given id, expired or not.

		The refresh flow needs the raw record to decide between "expired"
		and "missing": both are Unauthorized, but expiry is also the input
		to the sliding-renewal decision.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Session, error)

	/*
		UpdateExpiry persists a new absolute expiration for the session.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	UpdateExpiry(context context.Context, sessionID string, expiresAt time.Time) error

	/*
		ListActiveByUser returns the user's unexpired sessions, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Session: Unexpired sessions sorted by creation time descending
		  - error: Retrieval failures
	*/
	ListActiveByUser(context context.Context, userID string) ([]*Session, error)

	/*
		Delete removes the session with the given id. Deleting a session
		that no longer exists is not an error (logout is idempotent).

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, sessionID string) error

	/*
		DeleteByIDAndUser removes one session only if it belongs to userID.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - userID: string

		Returns:
		  - error: apperr.NotFound when no owned session matched, or
		    persistence failures
	*/
	DeleteByIDAndUser(context context.Context, sessionID, userID string) error

	/*
		DeleteAllByUser removes every session belonging to the user
		(forced global logout on password reset).

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteAllByUser(context context.Context, userID string) error

	/*
		DeleteExpired physically removes sessions past their expiration.
		Storage hygiene only; correctness never depends on it running.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Cleanup failures
	*/
	DeleteExpired(context context.Context) error
}

// # Verification Code Data Access

// VerificationCodeRepository defines the contract for one-time code records.
type VerificationCodeRepository interface {

	/*
		Create persists a new verification code.

		Parameters:
		  - context: context.Context
		  - code: *VerificationCode

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, code *VerificationCode) error

	/*
		FindValid returns the code with the given id only when its type
		matches and it has not expired. Wrong-type or lapsed codes are
		indistinguishable from absent ones.

		Parameters:
		  - context: context.Context
		  - id: string
		  - codeType: CodeType

		Returns:
		  - *VerificationCode: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindValid(context context.Context, id string, codeType CodeType) (*VerificationCode, error)

	/*
		Delete consumes (removes) a code after successful use.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		CountRecent counts codes of the given type created for the user
		after the since instant (reset rate limiting).

		Parameters:
		  - context: context.Context
		  - userID: string
		  - codeType: CodeType
		  - since: time.Time

		Returns:
		  - int64: Number of matching codes
		  - error: Retrieval failures
	*/
	CountRecent(context context.Context, userID string, codeType CodeType, since time.Time) (int64, error)
}
