// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/models"
)

// Answer count bounds for a question
const (
	MinAnswers = 2
	MaxAnswers = 6
)

type Repository struct {
	store *db.Store
}

func NewRepository(store *db.Store) *Repository {
	return &Repository{store: store}
}

// CreateQuestion inserts a question and its answers in one transaction and
// returns the new question id. Nothing is persisted if any insert fails.
func (r *Repository) CreateQuestion(ctx context.Context, text string, answers []string, sessionToken string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, validationError("question text is required")
	}
	if sessionToken == "" {
		return 0, validationError("session token is required")
	}
	if len(answers) < MinAnswers || len(answers) > MaxAnswers {
		return 0, validationError(fmt.Sprintf("a question needs between %d and %d answers, got %d", MinAnswers, MaxAnswers, len(answers)))
	}

	cleaned := make([]string, len(answers))
	for i, answer := range answers {
		cleaned[i] = strings.TrimSpace(answer)
		if cleaned[i] == "" {
			return 0, validationError(fmt.Sprintf("answer %d is empty", i+1))
		}
	}

	var questionID int64
	err := r.store.WithTx(ctx, func(tx *db.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO question (name, creator_token)
			VALUES (?, ?)
			RETURNING id
		`, text, sessionToken).Scan(&questionID)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}

		for _, answer := range cleaned {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO answer (question_id, name)
				VALUES (?, ?)
			`, questionID, answer)
			if err != nil {
				return fmt.Errorf("insert answer: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to create question", "error", err)
		return 0, unavailable("create question", err)
	}

	slog.Info("question created", "question_id", questionID, "answers", len(cleaned))
	return questionID, nil
}

// ListQuestions returns every question, newest first. CanDelete is set on
// the questions created by sessionToken.
func (r *Repository) ListQuestions(ctx context.Context, sessionToken string) ([]models.QuestionSummary, error) {
	rows, err := r.store.QueryContext(ctx, `
		SELECT id, name, creator_token
		FROM question
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, unavailable("list questions", err)
	}
	defer rows.Close()

	questions := []models.QuestionSummary{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.CreatorToken); err != nil {
			return nil, unavailable("scan question", err)
		}
		questions = append(questions, models.QuestionSummary{
			ID:        q.ID,
			Text:      q.Text,
			CanDelete: sessionToken != "" && q.CreatorToken == sessionToken,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list questions", err)
	}

	return questions, nil
}

// GetQuestionDetail returns {questionText: answers} with answers in id
// order, or an empty detail when the question does not exist.
func (r *Repository) GetQuestionDetail(ctx context.Context, questionID int64) (models.QuestionDetail, error) {
	rows, err := r.store.QueryContext(ctx, `
		SELECT q.name, a.id, a.name
		FROM question q
		JOIN answer a ON a.question_id = q.id
		WHERE q.id = ?
		ORDER BY a.id
	`, questionID)
	if err != nil {
		return nil, unavailable("get question detail", err)
	}
	defer rows.Close()

	detail := models.QuestionDetail{}
	for rows.Next() {
		var questionText string
		var answer models.AnswerRef
		if err := rows.Scan(&questionText, &answer.ID, &answer.Text); err != nil {
			return nil, unavailable("scan answer", err)
		}
		detail[questionText] = append(detail[questionText], answer)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("get question detail", err)
	}

	return detail, nil
}

// DeleteQuestion removes a question together with its answers and votes,
// but only when sessionToken created it. A question that does not exist or
// belongs to another session reports false without error.
func (r *Repository) DeleteQuestion(ctx context.Context, questionID int64, sessionToken string) (bool, error) {
	if sessionToken == "" {
		return false, nil
	}

	deleted := false
	err := r.store.WithTx(ctx, func(tx *db.Tx) error {
		var owned bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM question
				WHERE id = ? AND creator_token = ?
			)
		`, questionID, sessionToken).Scan(&owned)
		if err != nil {
			return fmt.Errorf("check owner: %w", err)
		}
		if !owned {
			return nil
		}

		// Children first so the cascade does not depend on foreign key enforcement.
		if _, err := tx.ExecContext(ctx, `DELETE FROM vote WHERE question_id = ?`, questionID); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM answer WHERE question_id = ?`, questionID); err != nil {
			return fmt.Errorf("delete answers: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			DELETE FROM question
			WHERE id = ? AND creator_token = ?
		`, questionID, sessionToken)
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		slog.Error("failed to delete question", "error", err, "question_id", questionID)
		return false, unavailable("delete question", err)
	}

	if deleted {
		slog.Info("question deleted", "question_id", questionID)
	}
	return deleted, nil
}
