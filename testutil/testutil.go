// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/db"
)

// TestSessionSecret signs session values in tests
const TestSessionSecret = "test-session-secret"

// SetupTestDB opens a fresh sqlite store in a temp dir with the full schema.
// The store is closed when the test finishes.
func SetupTestDB(t *testing.T) *db.Store {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "quickpoll.db")
	store, err := db.Open(context.Background(), db.Options{
		Driver:   db.DriverSQLite,
		URL:      url,
		MaxConns: 8,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseURL:   "file::memory:",
		DatabaseType:  db.DriverSQLite,
		MaxConns:      8,
		SessionSecret: TestSessionSecret,
		SessionName:   "quickpoll.sid",
		SessionMaxAge: 2 * time.Hour,
		LogLevel:      "info",
	}
}

// CreateTestQuestion inserts a question owned by creatorToken and returns its
// id together with the answer ids in insertion order.
func CreateTestQuestion(t *testing.T, store *db.Store, creatorToken, text string, answers ...string) (int64, []int64) {
	t.Helper()
	ctx := context.Background()

	var questionID int64
	err := store.QueryRowContext(ctx, `
		INSERT INTO question (name, creator_token) VALUES (?, ?) RETURNING id
	`, text, creatorToken).Scan(&questionID)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	answerIDs := make([]int64, 0, len(answers))
	for _, answer := range answers {
		var answerID int64
		err := store.QueryRowContext(ctx, `
			INSERT INTO answer (question_id, name) VALUES (?, ?) RETURNING id
		`, questionID, answer).Scan(&answerID)
		if err != nil {
			t.Fatalf("Failed to create test answer: %v", err)
		}
		answerIDs = append(answerIDs, answerID)
	}

	return questionID, answerIDs
}

// CountRows returns the number of rows in table matching where (may be "")
func CountRows(t *testing.T, store *db.Store, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	if err := store.QueryRowContext(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// AnswerCounter reads the stored vote counter of an answer
func AnswerCounter(t *testing.T, store *db.Store, answerID int64) int64 {
	t.Helper()

	var counter int64
	err := store.QueryRowContext(context.Background(), `SELECT counter FROM answer WHERE id = ?`, answerID).Scan(&counter)
	if err != nil {
		t.Fatalf("Failed to read counter for answer %d: %v", answerID, err)
	}
	return counter
}

// SessionHeaders returns headers that authenticate a request as token
func SessionHeaders(token string) map[string]string {
	return map[string]string{
		"X-Session-Token": auth.SignSessionToken(token, TestSessionSecret),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
