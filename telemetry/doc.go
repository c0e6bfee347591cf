// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package telemetry records request and domain metrics with
github.com/VictoriaMetrics/metrics.

	rec := telemetry.NewRecorder()
	rec.TrackPool(store.Stats)
	mux.HandleFunc("POST /answers/{id}", rec.Instrument("cast_vote", h.CastVote))
	mux.HandleFunc("GET /metrics", rec.Handler())

Exposed series:

  - quickpoll_requests_total{route,status}
  - quickpoll_request_duration_seconds{route} (histogram)
  - quickpoll_votes_total{outcome}
  - quickpoll_questions_created_total, quickpoll_questions_deleted_total
  - quickpoll_db_open_connections, quickpoll_db_in_use_connections, quickpoll_db_wait_count

Process metrics (CPU, memory, file descriptors) are appended to every scrape.
*/
package telemetry
