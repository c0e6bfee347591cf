// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *Store) CreateSchema(ctx context.Context) error {
	statements := postgresSchema
	if s.driver == DriverSQLite {
		statements = sqliteSchema
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// The vote primary key is the one-vote-per-session-per-question rule.
// The composite foreign key pins vote.question_id to the answer's question.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS question (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		creator_token TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_question_creator_token ON question(creator_token)`,

	`CREATE TABLE IF NOT EXISTS answer (
		id BIGSERIAL PRIMARY KEY,
		question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		counter BIGINT NOT NULL DEFAULT 0 CHECK (counter >= 0),
		UNIQUE (id, question_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id)`,

	`CREATE TABLE IF NOT EXISTS vote (
		session_token TEXT NOT NULL,
		answer_id BIGINT NOT NULL,
		question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (session_token, question_id),
		FOREIGN KEY (answer_id, question_id) REFERENCES answer(id, question_id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_answer_id ON vote(answer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_question_id ON vote(question_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS question (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		creator_token TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_question_creator_token ON question(creator_token)`,

	`CREATE TABLE IF NOT EXISTS answer (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		counter INTEGER NOT NULL DEFAULT 0 CHECK (counter >= 0),
		UNIQUE (id, question_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id)`,

	`CREATE TABLE IF NOT EXISTS vote (
		session_token TEXT NOT NULL,
		answer_id INTEGER NOT NULL,
		question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (session_token, question_id),
		FOREIGN KEY (answer_id, question_id) REFERENCES answer(id, question_id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_answer_id ON vote(answer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_question_id ON vote(question_id)`,
}
