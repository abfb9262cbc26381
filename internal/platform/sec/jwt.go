// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [auth.TokenCodec] dependency.
package sec

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Discriminated verification failures.
//
// # Why sentinels?
//
// Callers need to distinguish "token was once valid but aged out" from
// "token was never valid" without string matching. Verification never
// returns a raw jwt library error.
var (
	// ErrTokenExpired is returned when the embedded expiry has passed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid is returned for signature, audience, issuer, or
	// malformed-claims failures.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// AuthClaims is the verified payload of an access token.
//
// # Why custom claims?
//
// By embedding the UserID and SessionID directly inside the JWT, the
// authentication middleware can reconstruct the active user context WITHOUT
// querying the database on every single API request. A request carrying a
// valid access token is presumed to have a live session; only the refresh
// path cross-checks storage.
type AuthClaims struct {
	UserID    string
	SessionID string
}

// RefreshClaims is the verified payload of a refresh token.
//
// It carries only the session id; the owning user is resolved through the
// session record, which is what makes hard revocation possible.
type RefreshClaims struct {
	SessionID string
}

// accessJWTClaims is the wire shape of access token claims.
type accessJWTClaims struct {
	jwt.RegisteredClaims

	// Custom claims are abbreviated to keep the JWT payload small.
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
}

// refreshJWTClaims is the wire shape of refresh token claims.
type refreshJWTClaims struct {
	jwt.RegisteredClaims

	SessionID string `json:"sid"`
}

// TokenCodec signs and verifies access and refresh tokens using HS256.
//
// # Key Separation
//
// Access and refresh tokens use distinct symmetric secrets so a leaked
// secret bounds the blast radius to one token class. Both classes share the
// signing algorithm and the fixed audience marker.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
}

// NewTokenCodec creates a new [TokenCodec] with distinct per-class secrets.
func NewTokenCodec(accessSecret, refreshSecret, issuer, audience string) *TokenCodec {
	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		audience:      audience,
	}
}

/*
SignAccessToken creates a signed access token bound to a user and a session.

Parameters:
  - userID: string
  - sessionID: string
  - timeToLive: time.Duration (15m in production; tests may pass other values)

Returns:
  - A signed JWT string, or an error if signing fails.
*/
func (codec *TokenCodec) SignAccessToken(userID, sessionID string, timeToLive time.Duration) (string, error) {
	claims := accessJWTClaims{
		RegisteredClaims: codec.registeredClaims(userID, timeToLive),
		UserID:           userID,
		SessionID:        sessionID,
	}

	return codec.sign(claims, codec.accessSecret)
}

/*
SignRefreshToken creates a signed refresh token bound to a session.

Parameters:
  - sessionID: string
  - timeToLive: time.Duration (30d in production)

Returns:
  - A signed JWT string, or an error if signing fails.
*/
func (codec *TokenCodec) SignRefreshToken(sessionID string, timeToLive time.Duration) (string, error) {
	claims := refreshJWTClaims{
		RegisteredClaims: codec.registeredClaims(sessionID, timeToLive),
		SessionID:        sessionID,
	}

	return codec.sign(claims, codec.refreshSecret)
}

/*
VerifyAccessToken checks signature, audience, and expiry of an access token.

Returns:
  - *AuthClaims: Verified payload
  - error: [ErrTokenExpired] or [ErrTokenInvalid]
*/
func (codec *TokenCodec) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	claims := &accessJWTClaims{}
	if err := codec.verify(tokenString, codec.accessSecret, claims); err != nil {
		return nil, err
	}

	if claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}

	return &AuthClaims{UserID: claims.UserID, SessionID: claims.SessionID}, nil
}

/*
VerifyRefreshToken checks signature, audience, and expiry of a refresh token.

Returns:
  - *RefreshClaims: Verified payload
  - error: [ErrTokenExpired] or [ErrTokenInvalid]
*/
func (codec *TokenCodec) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &refreshJWTClaims{}
	if err := codec.verify(tokenString, codec.refreshSecret, claims); err != nil {
		return nil, err
	}

	if claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}

	return &RefreshClaims{SessionID: claims.SessionID}, nil
}

// registeredClaims stamps the shared issuer/audience/expiry envelope.
func (codec *TokenCodec) registeredClaims(subject string, timeToLive time.Duration) jwt.RegisteredClaims {
	currentTime := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    codec.issuer,
		Audience:  jwt.ClaimStrings{codec.audience},
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}
}

// sign produces the compact HS256 serialization of the claims.
func (codec *TokenCodec) sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// verify parses tokenString into claims, enforcing algorithm, audience, and issuer.
//
// All failures collapse into the two sentinel errors: this method must not
// leak library errors or panic on malformed input.
func (codec *TokenCodec) verify(tokenString string, secret []byte, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(codec.audience),
		jwt.WithIssuer(codec.issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}

	if !token.Valid {
		return ErrTokenInvalid
	}

	return nil
}
