// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth

import "time"

// # Lifecycle Constraints

const (
	// SessionTTL is the absolute lifetime of a freshly created session.
	// Also the lifetime granted when a session is renewed near expiry.
	SessionTTL = 30 * 24 * time.Hour

	// SessionRenewalWindow is the sliding-renewal threshold: a refresh that
	// finds the session within one day of expiry extends it to a full
	// [SessionTTL] and rotates the refresh token. Refreshes outside the
	// window leave the session untouched, so idle sessions age out after 30
	// days of inactivity while active ones live indefinitely.
	SessionRenewalWindow = 24 * time.Hour

	// EmailVerificationTTL is how long an email verification code stays
	// consumable. Long-lived (1 year) as users might not check email soon.
	EmailVerificationTTL = 365 * 24 * time.Hour

	// PasswordResetTTL is how long a password reset code stays consumable.
	// Short-lived (1 hour) for security.
	PasswordResetTTL = 1 * time.Hour

	// PasswordResetMinInterval is the fixed rate-limit window: at most one
	// reset code may be created per user within this trailing window.
	PasswordResetMinInterval = 5 * time.Minute
)
