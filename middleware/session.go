// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/cliparse"
)

// SessionHeader lets non-browser clients present a signed session value
const SessionHeader = "X-Session-Token"

type sessionKey struct{}

// Sessions resolves the caller's session token from a signed cookie,
// issuing a new one when the cookie is missing or fails verification.
type Sessions struct {
	name   string
	secret string
	maxAge time.Duration
	secure bool
}

func NewSessions(cfg cliparse.Config) *Sessions {
	return &Sessions{
		name:   cfg.SessionName,
		secret: cfg.SessionSecret,
		maxAge: cfg.SessionMaxAge,
		secure: cfg.Production,
	}
}

// Wrap stores the resolved token in the request context for next
func (s *Sessions) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.resolve(r)
		if !ok {
			token = auth.GenerateSessionToken()
			http.SetCookie(w, s.cookie(token))
			slog.Debug("session issued", "path", r.URL.Path)
		}
		next(w, r.WithContext(WithSessionToken(r.Context(), token)))
	}
}

func (s *Sessions) resolve(r *http.Request) (string, bool) {
	if value := r.Header.Get(SessionHeader); value != "" {
		if token, err := auth.VerifySessionValue(value, s.secret); err == nil {
			return token, true
		}
	}

	c, err := r.Cookie(s.name)
	if err != nil {
		return "", false
	}
	token, err := auth.VerifySessionValue(c.Value, s.secret)
	if err != nil {
		slog.Warn("rejected session cookie", "error", err, "remote", GetClientIP(r))
		return "", false
	}
	return token, true
}

func (s *Sessions) cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    auth.SignSessionToken(token, s.secret),
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionKey{}, token)
}

// SessionToken returns the token resolved by Sessions.Wrap, or "" if the
// request was not wrapped.
func SessionToken(r *http.Request) string {
	token, _ := r.Context().Value(sessionKey{}).(string)
	return token
}
