// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telemetry

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickpoll/models"
)

func scrape(t *testing.T, r *Recorder) string {
	t.Helper()
	w := httptest.NewRecorder()
	r.Handler()(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 from metrics handler, got %d", w.Code)
	}
	return w.Body.String()
}

func TestRecorder_Instrument(t *testing.T) {
	r := NewRecorder()

	handler := r.Instrument("cast_vote", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	for i := 0; i < 3; i++ {
		handler(httptest.NewRecorder(), httptest.NewRequest("POST", "/answers/1", nil))
	}

	body := scrape(t, r)

	expected := []string{
		`quickpoll_requests_total{route="cast_vote",status="201"} 3`,
		`quickpoll_request_duration_seconds_count{route="cast_vote"} 3`,
	}
	for _, want := range expected {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics output to contain %q\n%s", want, body)
		}
	}
}

func TestRecorder_DomainCounters(t *testing.T) {
	r := NewRecorder()

	r.QuestionCreated()
	r.QuestionCreated()
	r.QuestionDeleted()
	r.VoteCast(models.VoteRecorded)
	r.VoteCast(models.VoteAlreadyVoted)
	r.VoteCast(models.VoteAlreadyVoted)

	body := scrape(t, r)

	expected := []string{
		"quickpoll_questions_created_total 2",
		"quickpoll_questions_deleted_total 1",
		`quickpoll_votes_total{outcome="recorded"} 1`,
		`quickpoll_votes_total{outcome="already_voted"} 2`,
	}
	for _, want := range expected {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}

func TestRecorder_TrackPool(t *testing.T) {
	r := NewRecorder()
	r.TrackPool(func() sql.DBStats {
		return sql.DBStats{OpenConnections: 4, InUse: 2, WaitCount: 9}
	})

	body := scrape(t, r)

	expected := []string{
		"quickpoll_db_open_connections 4",
		"quickpoll_db_in_use_connections 2",
		"quickpoll_db_wait_count 9",
	}
	for _, want := range expected {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}

func TestRecorder_Isolated(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.QuestionCreated()

	if !strings.Contains(scrape(t, b), "quickpoll_questions_created_total 0") {
		t.Error("Expected recorders to keep separate registries")
	}
}
