// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

/*
Package cookies binds the access and refresh tokens to their HTTP transport carriers.

It is the single place that knows cookie names, scopes, lifetimes, and
security flags, so every handler sets and clears the pair identically.

Policy:

  - Access cookie: scoped to the whole application, lifetime matches the 15m token TTL.
  - Refresh cookie: scoped ONLY to the refresh endpoint path, lifetime matches
    the 30d token TTL. The long-lived token is never sent on ordinary requests.
  - Both: HttpOnly + Secure + SameSite=Strict.
*/
package cookies

import (
	"net/http"
	"time"

	"github.com/averix-dev/averix/internal/platform/constants"
)

// SetAccessToken attaches the short-lived access token cookie to the response.
func SetAccessToken(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(constants.AccessTokenTTL),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// SetRefreshToken attaches the refresh token cookie, scoped to the refresh endpoint.
func SetRefreshToken(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshEndpointPath,
		Expires:  time.Now().Add(constants.RefreshTokenTTL),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// SetAuthPair attaches both token cookies at once (register, login).
func SetAuthPair(writer http.ResponseWriter, accessToken, refreshToken string) {
	SetAccessToken(writer, accessToken)
	SetRefreshToken(writer, refreshToken)
}

// Clear removes both token cookies regardless of their prior state.
//
// MaxAge -1 instructs the browser to delete the cookie immediately. The
// paths must mirror the set paths or browsers will keep the originals.
func Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshEndpointPath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// AccessToken reads the access token cookie from the request.
// Returns an empty string if the cookie is absent.
func AccessToken(request *http.Request) string {
	cookie, err := request.Cookie(constants.AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RefreshToken reads the refresh token cookie from the request.
// Returns an empty string if the cookie is absent.
func RefreshToken(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
