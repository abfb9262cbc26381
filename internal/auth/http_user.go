// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth

import (
	"net/http"

	requestutil "github.com/averix-dev/averix/internal/platform/request"
	"github.com/averix-dev/averix/internal/platform/respond"
)

// GetUser handles GET /user.
//
// Resolves the caller's account from the access token claims. The digest
// never serializes (json:"-" on the entity), so the wire body is safe as-is.
func (handler *Handler) GetUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
