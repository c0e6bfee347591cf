// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadDotEnv reads .env and .env.local (skipped when APP_ENV=production).
Variables already present in the environment are never overwritten.

# Flags and Environment

	-p                PORT              Server port (default: 3000)
	-d                DATABASE_URL      Database URL (required)
	-t                DATABASE_TYPE     sqlite or postgres (inferred from URL)
	-max-conns        DB_MAX_CONNS      Pool size (default: 100)
	-session-secret   SESSION_SECRET    Cookie signing secret (required)
	-session-name     SESSION_NAME      Cookie name (default: quickpoll.sid)
	-session-max-age  SESSION_MAX_AGE   Cookie lifetime (default: 2h)
	-static           STATIC_DIR        Frontend directory served at /
	-log-level        LOG_LEVEL         debug, info, warn, error

SESS_SECRET and SESS_NAME are accepted as aliases. When DATABASE_URL is
unset, a postgres URL is assembled from DB_HOST, DB_USER, DB_PASS and
DB_NAME.

CLI flags take precedence over environment variables.

APP_ENV=production sets Config.Production, which marks session cookies
Secure.
*/
package cliparse
