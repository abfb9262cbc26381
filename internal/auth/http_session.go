// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/averix-dev/averix/internal/platform/request"
	"github.com/averix-dev/averix/internal/platform/respond"
	"github.com/averix-dev/averix/internal/platform/validate"
)

// SessionRoutes builds the router for the session management endpoints.
//
// Mounted behind the strict authentication middleware; every handler here
// can rely on claims being present.
func (handler *Handler) SessionRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.ListSessions)
	router.Delete("/{id}", handler.DeleteSession)
	return router
}

// ListSessions handles GET /sessions.
//
// Returns the caller's active sessions, newest first, with the one backing
// this request marked is_current.
func (handler *Handler) ListSessions(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.service.ListSessions(request.Context(), claims.UserID, claims.SessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

// DeleteSession handles DELETE /sessions/{id}.
//
// Revoking the current session is permitted; the held access token then
// simply ages out within its 15-minute lifetime.
func (handler *Handler) DeleteSession(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.Required(FieldSessionID, sessionID).UUID(FieldSessionID, sessionID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSession(request.Context(), claims.UserID, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Session deleted")
}
