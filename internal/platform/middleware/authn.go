// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package middleware

import (
	"net/http"

	"github.com/averix-dev/averix/internal/platform/apperr"
	"github.com/averix-dev/averix/internal/platform/cookies"
	"github.com/averix-dev/averix/internal/platform/ctxutil"
	"github.com/averix-dev/averix/internal/platform/respond"
	"github.com/averix-dev/averix/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenCodec], allowing mocks to be injected during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the access token from its cookie.
//
// # Flow
//  1. Read the access token cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, verify signature/audience/expiry via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// The session store is deliberately NOT consulted here: a valid access token
// is presumed to belong to a live session for its 15-minute lifetime. Hard
// revocation happens on the refresh path, which does check storage.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			accessToken := cookies.AccessToken(request)
			if accessToken == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(accessToken)
			if err != nil {
				respond.Error(writer, request, apperr.InvalidAccessToken("Invalid or expired token"))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// AuthenticateLenient is the forgiving variant of [Authenticate]: a token
// that fails verification downgrades the request to anonymous instead of
// rejecting it.
//
// # Usage
//
// Mounted on the auth flow routes themselves. Refresh must be reachable with
// an expired access cookie (that is the whole point of refreshing), and
// logout must succeed no matter what the client presents.
func AuthenticateLenient(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			accessToken := cookies.AccessToken(request)
			if accessToken == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.VerifyAccessToken(accessToken)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Not authorized"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
