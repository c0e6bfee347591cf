// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telemetry

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
)

// Recorder owns a metrics set so each router gets an isolated registry.
type Recorder struct {
	set              *metrics.Set
	questionsCreated *metrics.Counter
	questionsDeleted *metrics.Counter
}

func NewRecorder() *Recorder {
	set := metrics.NewSet()
	return &Recorder{
		set:              set,
		questionsCreated: set.NewCounter("quickpoll_questions_created_total"),
		questionsDeleted: set.NewCounter("quickpoll_questions_deleted_total"),
	}
}

func (r *Recorder) VoteCast(outcome models.VoteOutcome) {
	r.set.GetOrCreateCounter(fmt.Sprintf(`quickpoll_votes_total{outcome=%q}`, outcome)).Inc()
}

func (r *Recorder) QuestionCreated() {
	r.questionsCreated.Inc()
}

func (r *Recorder) QuestionDeleted() {
	r.questionsDeleted.Inc()
}

// Instrument counts requests by route and status and times them.
// route must be a plain identifier such as "cast_vote".
func (r *Recorder) Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	duration := r.set.GetOrCreateHistogram(fmt.Sprintf(`quickpoll_request_duration_seconds{route=%q}`, route))

	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := middleware.NewStatusRecorder(w)

		next(rec, req)

		duration.UpdateDuration(start)
		r.set.GetOrCreateCounter(fmt.Sprintf(`quickpoll_requests_total{route=%q,status="%d"}`, route, rec.Status)).Inc()
	}
}

// TrackPool exposes connection pool gauges read from stats at scrape time
func (r *Recorder) TrackPool(stats func() sql.DBStats) {
	r.set.GetOrCreateGauge("quickpoll_db_open_connections", func() float64 {
		return float64(stats().OpenConnections)
	})
	r.set.GetOrCreateGauge("quickpoll_db_in_use_connections", func() float64 {
		return float64(stats().InUse)
	})
	r.set.GetOrCreateGauge("quickpoll_db_wait_count", func() float64 {
		return float64(stats().WaitCount)
	})
}

// Handler serves the set plus process metrics in Prometheus text format
func (r *Recorder) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		r.set.WritePrometheus(w)
		metrics.WriteProcessMetrics(w)
	}
}
