// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), Options{
		Driver: DriverSQLite,
		URL:    "file:" + filepath.Join(t.TempDir(), "store.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return store
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mysql", URL: "x"})
	if !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Expected ErrUnknownDriver, got %v", err)
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	store := openTestStore(t)

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Second CreateSchema failed: %v", err)
	}

	for _, table := range []string{"question", "answer", "vote"} {
		var n int
		err := store.QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	lite := &Store{driver: DriverSQLite}

	tests := []struct {
		name  string
		store *Store
		query string
		want  string
	}{
		{"postgres numbered", pg, "SELECT * FROM vote WHERE session_token = ? AND question_id = ?", "SELECT * FROM vote WHERE session_token = $1 AND question_id = $2"},
		{"postgres no params", pg, "SELECT 1", "SELECT 1"},
		{"sqlite untouched", lite, "DELETE FROM answer WHERE question_id = ?", "DELETE FROM answer WHERE question_id = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.store.Rebind(tt.query); got != tt.want {
				t.Errorf("Rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"file:a.db", "file:a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"},
		{"file:a.db?mode=rwc", "file:a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"},
		{"file:a.db?_txlock=deferred", "file:a.db?_txlock=deferred&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
	}

	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithTx(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx *Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO question (name, creator_token) VALUES (?, ?)`, "kept", "s1")
			return err
		})
		if err != nil {
			t.Fatal(err)
		}

		var n int
		store.QueryRowContext(ctx, `SELECT COUNT(*) FROM question WHERE name = ?`, "kept").Scan(&n)
		if n != 1 {
			t.Errorf("Expected committed row, got %d", n)
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithTx(ctx, func(tx *Tx) error {
			if _, err := tx.ExecContext(ctx, `INSERT INTO question (name, creator_token) VALUES (?, ?)`, "dropped", "s1"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected fn error to propagate, got %v", err)
		}

		var n int
		store.QueryRowContext(ctx, `SELECT COUNT(*) FROM question WHERE name = ?`, "dropped").Scan(&n)
		if n != 0 {
			t.Errorf("Expected rollback, found %d rows", n)
		}
	})
}

func TestConstraintErrors(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var questionID, answerID int64
	if err := store.QueryRowContext(ctx, `INSERT INTO question (name, creator_token) VALUES ('q', 's') RETURNING id`).Scan(&questionID); err != nil {
		t.Fatal(err)
	}
	if err := store.QueryRowContext(ctx, `INSERT INTO answer (question_id, name) VALUES (?, 'a') RETURNING id`, questionID).Scan(&answerID); err != nil {
		t.Fatal(err)
	}

	insertVote := `INSERT INTO vote (session_token, answer_id, question_id) VALUES (?, ?, ?)`
	if _, err := store.ExecContext(ctx, insertVote, "voter", answerID, questionID); err != nil {
		t.Fatal(err)
	}

	t.Run("duplicate vote", func(t *testing.T) {
		_, err := store.ExecContext(ctx, insertVote, "voter", answerID, questionID)
		if !IsUniqueViolation(err) {
			t.Errorf("Expected unique violation, got %v", err)
		}
		if IsForeignKeyViolation(err) {
			t.Error("Unique violation misreported as foreign key violation")
		}
	})

	t.Run("vote for missing answer", func(t *testing.T) {
		_, err := store.ExecContext(ctx, insertVote, "other", answerID+100, questionID)
		if !IsForeignKeyViolation(err) {
			t.Errorf("Expected foreign key violation, got %v", err)
		}
	})

	t.Run("postgres codes", func(t *testing.T) {
		if !IsUniqueViolation(&pq.Error{Code: "23505"}) {
			t.Error("Expected 23505 to be a unique violation")
		}
		if !IsForeignKeyViolation(&pq.Error{Code: "23503"}) {
			t.Error("Expected 23503 to be a foreign key violation")
		}
		if IsUniqueViolation(&pq.Error{Code: "40001"}) {
			t.Error("Serialization failure is not a unique violation")
		}
	})

	t.Run("nil and plain errors", func(t *testing.T) {
		if IsUniqueViolation(nil) || IsForeignKeyViolation(errors.New("UNIQUE constraint failed")) {
			t.Error("Expected only typed driver errors to be classified")
		}
	})
}
