// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/polls"
)

// pathID parses the {id} path segment. It writes a 400 and returns false
// when the segment is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// sessionToken returns the caller's session token or writes a 401
func sessionToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := middleware.SessionToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "session required")
		return "", false
	}
	return token, true
}

// writeError maps core errors to HTTP status codes
func writeError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, polls.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, polls.ErrStoreUnavailable):
		slog.Error("store unavailable", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
	default:
		slog.Error("unexpected error", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
