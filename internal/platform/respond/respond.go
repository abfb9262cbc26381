// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. It is
// the single boundary translator: every [apperr.AppError] kind maps to one
// HTTP status and one JSON body shape, so clients can parse errors robustly.
//
// Error body shapes:
//
//	{"message": "...", "errorCode": "..."}                        — all errors
//	{"errors": [{"path": "...", "message": "..."}], "message": ""} — validation
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/averix-dev/averix/internal/platform/apperr"
	"github.com/averix-dev/averix/internal/platform/constants"
	"github.com/averix-dev/averix/internal/platform/cookies"
	"github.com/averix-dev/averix/internal/platform/ctxutil"
)

// errorEnvelope is the uniform JSON body for non-validation errors.
type errorEnvelope struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// validationEnvelope is the JSON body for field-level validation failures.
type validationEnvelope struct {
	Errors  []apperr.FieldError `json:"errors"`
	Message string              `json:"message"`
}

// messageEnvelope is the JSON body for plain status messages.
type messageEnvelope struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the payload serialized as-is.
func OK(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusOK, payload)
}

// Message writes a 200 OK response with a plain {"message": ...} body.
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, messageEnvelope{Message: message})
}

// Error converts any Go error into a standardized JSON API error response.
//
// Any error on the refresh path additionally clears both token cookies
// before responding, so a client never retains stale cookies pointing at a
// dead session.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("error_code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	if request.URL.Path == constants.RefreshEndpointPath {
		cookies.Clear(writer)
	}

	if appError.Code == "VALIDATION" && len(appError.Details) > 0 {
		JSON(writer, appError.HTTPStatus, validationEnvelope{
			Errors:  appError.Details,
			Message: appError.Message,
		})
		return
	}

	JSON(writer, appError.HTTPStatus, errorEnvelope{
		Message:   appError.Message,
		ErrorCode: appError.Code,
	})
}
