// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/averix-dev/averix/internal/platform/apperr"
	"github.com/averix-dev/averix/internal/platform/constants"
	"github.com/averix-dev/averix/internal/platform/ctxutil"
	"github.com/averix-dev/averix/internal/platform/mail"
	"github.com/averix-dev/averix/internal/platform/sec"
	"github.com/averix-dev/averix/pkg/uuidv7"
)

// TokenPair carries the freshly signed access and refresh tokens issued for a
// new session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshResult carries the outcome of a token refresh.
//
// AccessToken is always present. RefreshToken is non-empty only when the
// session entered its renewal window and the refresh token was rotated.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

// # Service

// Service is the authentication flow engine.
//
// It orchestrates the repositories, the token codec, and the mailer to
// implement registration, login, refresh, email verification, and password
// recovery. All business rules for the session/token lifecycle live here;
// HTTP handlers only translate the wire format.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	codes    VerificationCodeRepository
	codec    *sec.TokenCodec
	mailer   mail.Mailer

	// appOrigin is the public frontend origin used to build the links
	// embedded in verification and password-reset mail.
	appOrigin string
}

// NewService creates a new authentication [Service].
func NewService(
	users UserRepository,
	sessions SessionRepository,
	codes VerificationCodeRepository,
	codec *sec.TokenCodec,
	mailer mail.Mailer,
	appOrigin string,
) *Service {
	return &Service{
		users:     users,
		sessions:  sessions,
		codes:     codes,
		codec:     codec,
		mailer:    mailer,
		appOrigin: appOrigin,
	}
}

// # Registration

/*
Register creates a new account, sends the verification email, and signs the
user in immediately by opening a session.

Description: The verification mail is best-effort. A mail provider outage
must not block signups, so delivery failures are logged and the account is
created unverified; the user can request a fresh code later.

Parameters:
  - context: context.Context
  - email: string (already validated and normalized by the handler)
  - password: string (plain text, hashed here)
  - userAgent: string (bound to the new session)

Returns:
  - *User: The newly created account
  - *TokenPair: Signed access and refresh tokens for the new session
  - error: apperr.Conflict when the email is taken, or internal failures
*/
func (service *Service) Register(context context.Context, email, password, userAgent string) (*User, *TokenPair, error) {
	_, err := service.users.FindByEmail(context, email)
	if err == nil {
		return nil, nil, apperr.Conflict("Email already in use")
	}
	if apperr.As(err) == nil {
		return nil, nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("auth_service_register_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Email:        email,
		PasswordHash: passwordHash,
		IsVerified:   false,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, nil, err
	}

	code := &VerificationCode{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		Type:      CodeEmailVerification,
		ExpiresAt: time.Now().Add(EmailVerificationTTL),
	}

	if err := service.codes.Create(context, code); err != nil {
		return nil, nil, err
	}

	verifyURL := fmt.Sprintf("%s/email/verify/%s", service.appOrigin, code.ID)
	if _, err := service.mailer.Send(context, mail.VerifyEmailMessage(user.Email, verifyURL)); err != nil {
		ctxutil.GetLogger(context).Warn("verification email delivery failed",
			"user_id", user.ID,
			"error", err,
		)
	}

	pair, err := service.openSession(context, user.ID, userAgent)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// # Login / Logout

/*
Login authenticates a user by email and password and opens a new session.

Description: An unknown email and a wrong password produce the same
Unauthorized error, so the endpoint cannot be used to enumerate accounts.

Parameters:
  - context: context.Context
  - email: string
  - password: string
  - userAgent: string

Returns:
  - *User: The authenticated account
  - *TokenPair: Signed tokens for the new session
  - error: apperr.Unauthorized on any credential failure
*/
func (service *Service) Login(context context.Context, email, password, userAgent string) (*User, *TokenPair, error) {
	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		if apperr.As(err) != nil {
			return nil, nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, apperr.Unauthorized("Invalid email or password")
	}

	pair, err := service.openSession(context, user.ID, userAgent)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

/*
Logout terminates the session identified by sessionID.

Description: Logout is strictly best-effort: a session that is already gone,
or a storage hiccup, still yields success so the client always ends up
logged out (the handler clears cookies unconditionally).

Parameters:
  - context: context.Context
  - sessionID: string (empty when the request carried no valid access token)

Returns:
  - error: Always nil
*/
func (service *Service) Logout(context context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := service.sessions.Delete(context, sessionID); err != nil {
		ctxutil.GetLogger(context).Warn("logout session delete failed",
			"session_id", sessionID,
			"error", err,
		)
	}

	return nil
}

// # Token Refresh

/*
Refresh exchanges a valid refresh token for a fresh access token, sliding the
session forward when it nears expiry.

Description: This is the one place session liveness is cross-checked against
storage, which is what makes sessions revocable despite stateless access
tokens. The renewal rule: if the session expires within
[SessionRenewalWindow], its expiry is pushed to now + [SessionTTL] and a
rotated refresh token is issued; otherwise the stored expiry is untouched
and RefreshToken stays empty. Active sessions therefore live indefinitely
while idle ones age out after 30 days.

Parameters:
  - context: context.Context
  - refreshToken: string (raw JWT from the refresh cookie)

Returns:
  - *RefreshResult: New access token, plus a rotated refresh token when renewed
  - error: apperr.Unauthorized when the token or session is no longer valid
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := service.codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	session, err := service.sessions.FindByID(context, claims.SessionID)
	if err != nil {
		if apperr.As(err) != nil {
			return nil, apperr.Unauthorized("Session expired")
		}
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	now := time.Now()
	if !session.ExpiresAt.After(now) {
		return nil, apperr.Unauthorized("Session expired")
	}

	result := &RefreshResult{}

	if session.ExpiresAt.Sub(now) <= SessionRenewalWindow {
		newExpiry := now.Add(SessionTTL)
		if err := service.sessions.UpdateExpiry(context, session.ID, newExpiry); err != nil {
			return nil, err
		}

		rotated, err := service.codec.SignRefreshToken(session.ID, constants.RefreshTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("auth_service_refresh_sign_failed: %w", err)
		}
		result.RefreshToken = rotated
	}

	accessToken, err := service.codec.SignAccessToken(session.UserID, session.ID, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_sign_failed: %w", err)
	}
	result.AccessToken = accessToken

	return result, nil
}

// # Email Verification

/*
VerifyEmail consumes an email verification code and marks the account verified.

Parameters:
  - context: context.Context
  - codeID: string (the code id from the emailed link)

Returns:
  - *User: The verified account
  - error: apperr.NotFound when the code is absent, expired, or wrong type
*/
func (service *Service) VerifyEmail(context context.Context, codeID string) (*User, error) {
	code, err := service.codes.FindValid(context, codeID, CodeEmailVerification)
	if err != nil {
		if apperr.As(err) != nil {
			return nil, apperr.NotFound("Invalid or expired verification code")
		}
		return nil, err
	}

	if err := service.users.MarkVerified(context, code.UserID); err != nil {
		return nil, err
	}

	// Single use: consumed on success only. A failed MarkVerified leaves the
	// code intact so the link can be retried.
	if err := service.codes.Delete(context, code.ID); err != nil {
		return nil, err
	}

	return service.users.FindByID(context, code.UserID)
}

// # Password Recovery

/*
RequestPasswordReset creates a short-lived reset code and emails the reset link.

Description: Unlike the verification mail, delivery here is load-bearing.
The emailed link is the only way to learn the code, so a failed or
id-less delivery is surfaced as an error rather than swallowed. The flow is
rate limited to one code per user per [PasswordResetMinInterval].

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: apperr.NotFound for unknown emails, apperr.TooManyRequests when
    rate limited, or delivery failures
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		if apperr.As(err) != nil {
			return apperr.NotFound("User not found")
		}
		return fmt.Errorf("auth_service_reset_lookup_failed: %w", err)
	}

	since := time.Now().Add(-PasswordResetMinInterval)
	recent, err := service.codes.CountRecent(context, user.ID, CodePasswordReset, since)
	if err != nil {
		return err
	}
	if recent >= 1 {
		return apperr.TooManyRequests("Too many requests, please try again later")
	}

	code := &VerificationCode{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		Type:      CodePasswordReset,
		ExpiresAt: time.Now().Add(PasswordResetTTL),
	}

	if err := service.codes.Create(context, code); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/password/reset?code=%s&exp=%d",
		service.appOrigin, code.ID, code.ExpiresAt.UnixMilli())

	deliveryID, err := service.mailer.Send(context, mail.PasswordResetMessage(user.Email, resetURL))
	if err != nil {
		return apperr.InternalMessage("Failed to send password reset email", err)
	}
	if deliveryID == "" {
		return apperr.InternalMessage("Failed to send password reset email",
			errors.New("mail provider returned no delivery id"))
	}

	return nil
}

/*
ResetPassword consumes a reset code, replaces the password, and revokes every
session belonging to the account.

Description: The global session wipe is the point of the flow. Whoever held
the old password (or a stolen session) is logged out everywhere; the user
signs in again with the new password.

Parameters:
  - context: context.Context
  - codeID: string
  - newPassword: string (plain text, hashed here)

Returns:
  - error: apperr.NotFound when the code is absent, expired, or wrong type
*/
func (service *Service) ResetPassword(context context.Context, codeID, newPassword string) error {
	code, err := service.codes.FindValid(context, codeID, CodePasswordReset)
	if err != nil {
		if apperr.As(err) != nil {
			return apperr.NotFound("Invalid or expired verification code")
		}
		return err
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(context, code.UserID, newHash); err != nil {
		return err
	}

	if err := service.codes.Delete(context, code.ID); err != nil {
		return err
	}

	return service.sessions.DeleteAllByUser(context, code.UserID)
}

// # Session Management

/*
ListSessions returns the caller's active sessions, newest first, with the
session backing the current request flagged.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string (from the caller's access token claims)

Returns:
  - []SessionInfo: Active session projections
  - error: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID, currentSessionID string) ([]SessionInfo, error) {
	sessions, err := service.sessions.ListActiveByUser(context, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, SessionInfo{
			ID:        session.ID,
			UserAgent: session.UserAgent,
			CreatedAt: session.CreatedAt,
			IsCurrent: session.ID == currentSessionID,
		})
	}

	return infos, nil
}

/*
DeleteSession revokes one of the caller's sessions by id.

Description: Ownership is enforced in the delete predicate itself, so a
session id belonging to another user is indistinguishable from a
nonexistent one.

Parameters:
  - context: context.Context
  - userID: string (the caller)
  - sessionID: string (the session to revoke)

Returns:
  - error: apperr.NotFound when the caller owns no such session
*/
func (service *Service) DeleteSession(context context.Context, userID, sessionID string) error {
	return service.sessions.DeleteByIDAndUser(context, sessionID, userID)
}

/*
GetUser returns the account for the given user id.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetUser(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

// # Internals

// openSession creates a session record and signs the matching token pair.
func (service *Service) openSession(context context.Context, userID, userAgent string) (*TokenPair, error) {
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    userID,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	if err := service.sessions.Create(context, session); err != nil {
		return nil, err
	}

	accessToken, err := service.codec.SignAccessToken(userID, session.ID, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_sign_access_failed: %w", err)
	}

	refreshToken, err := service.codec.SignRefreshToken(session.ID, constants.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_sign_refresh_failed: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
