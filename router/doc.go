// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quickpoll API.

	mux := router.NewRouter(store, cfg)

# Endpoints

	GET    /health          - Liveness, plain "OK"
	GET    /metrics         - Prometheus text exposition

	GET    /questions       - List questions, newest first, with canDelete
	POST   /questions       - Create {"question": "...", "answers": [...]}
	GET    /questions/{id}  - {questionText: [{id, text}, ...]} or {}
	DELETE /questions/{id}  - Delete if created by the calling session

	POST   /answers/{id}    - Cast a vote (201 recorded, 200 already_voted, 404)
	GET    /stats/{id}      - Tallies, {} until the session has voted

	GET    /                - Files from STATIC_DIR, else a banner

API routes are wrapped with request logging, metrics and session
resolution. Each router owns its own metrics registry.
*/
package router
