// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averix-dev/averix/internal/auth"
	"github.com/averix-dev/averix/internal/platform/constants"
	"github.com/averix-dev/averix/internal/platform/middleware"
)

// passthrough is a no-op middleware standing in for the Redis throttle.
func passthrough(next http.Handler) http.Handler { return next }

// newTestRouter mounts the auth routes the way the API server does, so the
// refresh cookie path matches the real endpoint.
func newTestRouter(h *harness) *chi.Mux {
	handler := auth.NewHandler(h.service)
	router := chi.NewRouter()
	router.Mount("/api/v1/auth", handler.Routes(middleware.AuthenticateLenient(h.codec), passthrough))
	return router
}

func cookieByName(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestHTTPRegister_SetsCookiesAndHidesDigest(t *testing.T) {
	h := newHarness()
	router := newTestRouter(h)

	body := `{"email":"wire@averix.test","password":"hunter2hunter2","confirmPassword":"hunter2hunter2"}`
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "wire@averix.test", payload["email"])
	assert.Equal(t, false, payload["verified"])
	// The digest must not appear under any key.
	assert.NotContains(t, recorder.Body.String(), "$2a$")
	assert.NotContains(t, payload, "passwordHash")

	access := cookieByName(t, recorder, constants.AccessTokenCookieName)
	require.NotNil(t, access)
	assert.Equal(t, "/", access.Path)

	refresh := cookieByName(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, refresh)
	assert.Equal(t, constants.RefreshEndpointPath, refresh.Path)
}

func TestHTTPRegister_ValidationShape(t *testing.T) {
	h := newHarness()
	router := newTestRouter(h)

	body := `{"email":"not-an-email","password":"short","confirmPassword":"different"}`
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var payload struct {
		Errors []struct {
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"errors"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Errors)

	paths := make([]string, 0, len(payload.Errors))
	for _, fieldError := range payload.Errors {
		paths = append(paths, fieldError.Path)
	}
	assert.Contains(t, paths, "email")
	assert.Contains(t, paths, "password")
	assert.Contains(t, paths, "confirmPassword")
}

func TestHTTPLogin_WrongPasswordShape(t *testing.T) {
	h := newHarness()
	h.register(t, "wire-login@averix.test")
	router := newTestRouter(h)

	body := `{"email":"wire-login@averix.test","password":"wrong-password"}`
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var payload struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "Invalid email or password", payload.Message)
	assert.Equal(t, "UNAUTHORIZED", payload.ErrorCode)
}

func TestHTTPRefresh_FailureClearsCookies(t *testing.T) {
	h := newHarness()
	router := newTestRouter(h)

	request := httptest.NewRequest(http.MethodPost, constants.RefreshEndpointPath, nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "stale-garbage"})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Both carriers are expired on any refresh-path error.
	access := cookieByName(t, recorder, constants.AccessTokenCookieName)
	require.NotNil(t, access)
	assert.Negative(t, access.MaxAge)

	refresh := cookieByName(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, refresh)
	assert.Negative(t, refresh.MaxAge)
}

func TestHTTPRefresh_RotationSetsRefreshCookie(t *testing.T) {
	h := newHarness()
	user := h.register(t, "wire-renew@averix.test")
	_, token := seedSession(t, h, user.ID, 12*time.Hour)
	router := newTestRouter(h)

	request := httptest.NewRequest(http.MethodPost, constants.RefreshEndpointPath, nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: token})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, cookieByName(t, recorder, constants.AccessTokenCookieName))
	require.NotNil(t, cookieByName(t, recorder, constants.RefreshTokenCookieName))
}

func TestHTTPLogout_AlwaysOK(t *testing.T) {
	h := newHarness()
	router := newTestRouter(h)

	// No token at all.
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Garbage access token: the lenient verifier downgrades to anonymous.
	request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "garbage"})
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	access := cookieByName(t, recorder, constants.AccessTokenCookieName)
	require.NotNil(t, access)
	assert.Negative(t, access.MaxAge)
}

func TestHTTPVerifyEmail_BadCodeShape(t *testing.T) {
	h := newHarness()
	router := newTestRouter(h)

	// Well-formed UUID that matches nothing.
	request := httptest.NewRequest(http.MethodGet, "/api/v1/auth/email/verify/01912d68-783e-7f44-8b2f-1f9c63a0e0aa", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	// Malformed id is rejected before the store is consulted.
	request = httptest.NewRequest(http.MethodGet, "/api/v1/auth/email/verify/not-a-uuid", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
