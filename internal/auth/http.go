// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averix-dev/averix/internal/platform/apperr"
	"github.com/averix-dev/averix/internal/platform/cookies"
	requestutil "github.com/averix-dev/averix/internal/platform/request"
	"github.com/averix-dev/averix/internal/platform/respond"
	"github.com/averix-dev/averix/internal/platform/validate"
)

// # HTTP Layer

// Handler exposes the authentication flows over HTTP.
//
// It owns wire concerns only: decoding, validation, cookie binding, and
// response shaping. Every business decision is delegated to [Service].
type Handler struct {
	service *Service
}

// NewHandler creates a new authentication [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes builds the router for the authentication flow endpoints.
//
// lenientAuth resolves claims when the access cookie verifies and downgrades
// to anonymous otherwise; refresh and logout must stay reachable with a dead
// access token. throttle is the per-IP fixed-window limiter applied to the
// credential endpoints only.
func (handler *Handler) Routes(lenientAuth, throttle func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(lenientAuth)

	router.Group(func(public chi.Router) {
		public.Use(throttle)
		public.Post("/register", handler.Register)
		public.Post("/login", handler.Login)
		public.Post("/password/forgot", handler.ForgotPassword)
	})

	router.Post("/logout", handler.Logout)
	router.Post("/refresh", handler.Refresh)
	router.Get("/email/verify/{code}", handler.VerifyEmail)
	router.Post("/password/reset", handler.ResetPassword)

	return router
}

// # Request Payloads

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	VerificationCode string `json:"verificationCode"`
	Password         string `json:"password"`
}

// # Flow Endpoints

// Register handles POST /auth/register.
//
// On success the response carries the new user (password digest excluded)
// and both token cookies, so registration doubles as the first login.
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldEmail, payload.Email).
		Email(FieldEmail, payload.Email).
		MaxLen(FieldEmail, payload.Email, 254).
		Required(FieldPassword, payload.Password).
		MinLen(FieldPassword, payload.Password, 8).
		MaxLen(FieldPassword, payload.Password, 128).
		Match(FieldConfirmPassword, payload.ConfirmPassword, payload.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, tokens, err := handler.service.Register(request.Context(), payload.Email, payload.Password, request.UserAgent())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cookies.SetAuthPair(writer, tokens.AccessToken, tokens.RefreshToken)
	respond.OK(writer, user)
}

// Login handles POST /auth/login.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldEmail, payload.Email).
		Email(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, tokens, err := handler.service.Login(request.Context(), payload.Email, payload.Password, request.UserAgent())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cookies.SetAuthPair(writer, tokens.AccessToken, tokens.RefreshToken)
	respond.OK(writer, user)
}

// Logout handles POST /auth/logout.
//
// Always succeeds. The session delete is attempted only when the request
// carried a verifiable access token; cookies are cleared either way.
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	sessionID := ""
	if claims := requestutil.Claims(request); claims != nil {
		sessionID = claims.SessionID
	}

	_ = handler.service.Logout(request.Context(), sessionID)

	cookies.Clear(writer)
	respond.Message(writer, "Logged out")
}

// Refresh handles POST /auth/refresh.
//
// Sets a fresh access cookie, and a rotated refresh cookie when the session
// was renewed. Any failure is translated by respond.Error, which clears both
// cookies on this path.
func (handler *Handler) Refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := cookies.RefreshToken(request)
	if refreshToken == "" {
		respond.Error(writer, request, apperr.Unauthorized("Invalid refresh token"))
		return
	}

	result, err := handler.service.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cookies.SetAccessToken(writer, result.AccessToken)
	if result.RefreshToken != "" {
		cookies.SetRefreshToken(writer, result.RefreshToken)
	}

	respond.Message(writer, "Token refreshed")
}

// VerifyEmail handles GET /auth/email/verify/{code}.
func (handler *Handler) VerifyEmail(writer http.ResponseWriter, request *http.Request) {
	codeID := requestutil.Param(request, "code")

	validator := &validate.Validator{}
	if err := validator.Required(FieldCode, codeID).UUID(FieldCode, codeID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.VerifyEmail(request.Context(), codeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// ForgotPassword handles POST /auth/password/forgot.
func (handler *Handler) ForgotPassword(writer http.ResponseWriter, request *http.Request) {
	var payload forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldEmail, payload.Email).
		Email(FieldEmail, payload.Email).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RequestPasswordReset(request.Context(), payload.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Password reset email sent")
}

// ResetPassword handles POST /auth/password/reset.
//
// Clears both token cookies on success: the reset revoked every session,
// including whichever one the caller may still hold.
func (handler *Handler) ResetPassword(writer http.ResponseWriter, request *http.Request) {
	var payload resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldCode, payload.VerificationCode).
		UUID(FieldCode, payload.VerificationCode).
		Required(FieldPassword, payload.Password).
		MinLen(FieldPassword, payload.Password, 8).
		MaxLen(FieldPassword, payload.Password, 128).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), payload.VerificationCode, payload.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cookies.Clear(writer)
	respond.Message(writer, "Password has been reset")
}
