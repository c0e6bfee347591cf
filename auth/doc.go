// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues and verifies session tokens.

A session token is an opaque UUID that identifies a browser session. The
service uses it only as an equality key: it marks the creator of a question
and the voter of a vote.

# Issuing

	token := auth.GenerateSessionToken()
	value := auth.SignSessionToken(token, cfg.SessionSecret)

The cookie value is <token>.<signature>, where the signature is an
HMAC-SHA256 of the token keyed by the session secret, URL-safe base64
without padding.

# Verifying

	token, err := auth.VerifySessionValue(cookie.Value, cfg.SessionSecret)
	if err != nil {
		// issue a new session
	}

Errors:

  - ErrInvalidToken: malformed value or token is not a UUID
  - ErrInvalidSession: signature does not match

Signatures are compared with hmac.Equal (constant time).
*/
package auth
