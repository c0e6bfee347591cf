// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	mux := NewRouter(testutil.SetupTestDB(t), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	t.Run("banner without static dir", func(t *testing.T) {
		mux := NewRouter(testutil.SetupTestDB(t), testutil.GetTestConfig())

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		if w.Body.String() != "quickpoll API v1" {
			t.Errorf("Expected banner, got '%s'", w.Body.String())
		}
	})

	t.Run("static dir", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>quickpoll</h1>"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg := testutil.GetTestConfig()
		cfg.StaticDir = dir
		mux := NewRouter(testutil.SetupTestDB(t), cfg)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<h1>quickpoll</h1>") {
			t.Errorf("Expected index.html, got %d '%s'", w.Code, w.Body.String())
		}
	})
}

func TestRouteExistence(t *testing.T) {
	mux := NewRouter(testutil.SetupTestDB(t), testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/"},
		{"GET", "/questions"},
		{"POST", "/questions"},
		{"GET", "/questions/1"},
		{"DELETE", "/questions/1"},
		{"POST", "/answers/1"},
		{"GET", "/stats/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			// 400 and 404 are valid handler responses here
			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := NewRouter(testutil.SetupTestDB(t), testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/questions/1"},
		{"GET", "/answers/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

// browser keeps the session cookie between requests like a real client
type browser struct {
	t      *testing.T
	mux    *http.ServeMux
	cookie *http.Cookie
}

func (b *browser) do(method, path string, body any) *httptest.ResponseRecorder {
	b.t.Helper()

	req := testutil.MakeRequest(method, path, body, nil)
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.mux.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "quickpoll.sid" {
			b.cookie = c
		}
	}
	return w
}

// TestBestColorFlow runs the whole product flow over HTTP with two browsers
func TestBestColorFlow(t *testing.T) {
	mux := NewRouter(testutil.SetupTestDB(t), testutil.GetTestConfig())
	alice := &browser{t: t, mux: mux}
	bob := &browser{t: t, mux: mux}

	// Alice creates the question
	w := alice.do("POST", "/questions", models.CreateQuestionRequest{
		Question: "Best color?",
		Answers:  []string{"Red", "Blue"},
	})
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.CreateQuestionResponse
	testutil.AssertJSON(t, w, &created)
	if alice.cookie == nil {
		t.Fatal("Expected a session cookie to be issued")
	}
	qid := strconv.FormatInt(created.QuestionID, 10)

	// Bob sees it but cannot delete it
	w = bob.do("GET", "/questions", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var list []models.QuestionSummary
	testutil.AssertJSON(t, w, &list)
	if len(list) != 1 || list[0].CanDelete {
		t.Fatalf("Expected one non-deletable question for Bob, got %+v", list)
	}

	w = bob.do("GET", "/questions/"+qid, nil)
	var detail models.QuestionDetail
	testutil.AssertJSON(t, w, &detail)
	red := detail["Best color?"][0]

	// Stats stay hidden until Bob votes
	w = bob.do("GET", "/stats/"+qid, nil)
	if body := strings.TrimSpace(w.Body.String()); body != "{}" {
		t.Errorf("Expected hidden stats, got %s", body)
	}

	w = bob.do("POST", "/answers/"+strconv.FormatInt(red.ID, 10), nil)
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = bob.do("POST", "/answers/"+strconv.FormatInt(red.ID, 10), nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = bob.do("GET", "/stats/"+qid, nil)
	var stats map[string]models.AnswerStats
	testutil.AssertJSON(t, w, &stats)
	if got := stats[strconv.FormatInt(red.ID, 10)]; got != (models.AnswerStats{Name: "Red", Counter: 1, Voted: true}) {
		t.Errorf("Unexpected Red stats for Bob: %+v", got)
	}

	w = alice.do("GET", "/stats/"+qid, nil)
	if body := strings.TrimSpace(w.Body.String()); body != "{}" {
		t.Errorf("Expected Alice to see {}, got %s", body)
	}

	// Only Alice can delete
	w = bob.do("DELETE", "/questions/"+qid, nil)
	var resp models.DeleteQuestionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Deleted {
		t.Error("Expected Bob's delete to be refused")
	}

	w = alice.do("DELETE", "/questions/"+qid, nil)
	testutil.AssertJSON(t, w, &resp)
	if !resp.Deleted {
		t.Error("Expected Alice's delete to succeed")
	}

	w = bob.do("GET", "/questions/"+qid, nil)
	if body := strings.TrimSpace(w.Body.String()); body != "{}" {
		t.Errorf("Expected deleted question to read as {}, got %s", body)
	}

	// Metrics saw the traffic
	w = alice.do("GET", "/metrics", nil)
	for _, want := range []string{
		"quickpoll_questions_created_total 1",
		"quickpoll_questions_deleted_total 1",
		`quickpoll_votes_total{outcome="recorded"} 1`,
		`quickpoll_votes_total{outcome="already_voted"} 1`,
		`quickpoll_requests_total{route="cast_vote",status="201"} 1`,
	} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("Expected metrics to contain %q", want)
		}
	}
}

func TestSessionHeader(t *testing.T) {
	store := testutil.SetupTestDB(t)
	mux := NewRouter(store, testutil.GetTestConfig())

	token := auth.GenerateSessionToken()
	id, _ := testutil.CreateTestQuestion(t, store, token, "Mine?", "a", "b")

	req := testutil.MakeRequest("GET", "/questions", nil, testutil.SessionHeaders(token))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var list []models.QuestionSummary
	testutil.AssertJSON(t, w, &list)
	if len(list) != 1 || list[0].ID != id || !list[0].CanDelete {
		t.Errorf("Expected header session to own question %d, got %+v", id, list)
	}
}
