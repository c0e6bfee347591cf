// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidToken   = errors.New("invalid token format")
)

// GenerateSessionToken creates a new random session token
func GenerateSessionToken() string {
	return uuid.NewString()
}

// SessionSignature creates the HMAC of a session token.
// This is deterministic and verifiable
func SessionSignature(token, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(token))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner cookies
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// SignSessionToken returns the cookie value for a token: <token>.<signature>
func SignSessionToken(token, secret string) string {
	return token + "." + SessionSignature(token, secret)
}

// VerifySessionValue checks a signed cookie value and returns the token it carries
func VerifySessionValue(value, secret string) (string, error) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 || i == len(value)-1 {
		return "", ErrInvalidToken
	}

	token, sig := value[:i], value[i+1:]
	if err := uuid.Validate(token); err != nil {
		return "", ErrInvalidToken
	}

	expected := SessionSignature(token, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSession
	}
	return token, nil
}
