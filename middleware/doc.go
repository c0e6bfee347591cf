// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs method, path, status, response size and duration_ms on completion.
StatusRecorder is exported so other wrappers (metrics) can read the status.

# Sessions

	sessions := middleware.NewSessions(cfg)
	mux.HandleFunc("POST /answers/{id}", sessions.Wrap(h.CastVote))

	token := middleware.SessionToken(r)

Wrap accepts a signed value from the session cookie or the X-Session-Token
header. When neither verifies, a fresh token is issued in a cookie that is
HttpOnly, SameSite=Strict and Secure in production.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

GetClientIP honours X-Forwarded-For and X-Real-IP. It is only used for logging.
*/
package middleware
