// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/models"
)

// errVoteRejected rolls back a transaction whose insert lost a race.
// The outcome has already been decided when it is returned.
var errVoteRejected = errors.New("vote rejected")

// Ledger records votes. A session holds at most one vote per question.
type Ledger struct {
	store *db.Store
}

func NewLedger(store *db.Store) *Ledger {
	return &Ledger{store: store}
}

// CastVote records a vote by sessionToken for answerID.
//
// The absence check scans every answer of the question, not only answerID.
// Concurrent casts for the same (session, question) may all pass the check;
// every insert after the first hits the vote primary key and is
// reported as VoteAlreadyVoted after its transaction rolls back. The counter
// increment and the ledger insert always commit together.
func (l *Ledger) CastVote(ctx context.Context, answerID int64, sessionToken string) (models.VoteOutcome, error) {
	if sessionToken == "" {
		return "", validationError("session token is required")
	}

	var outcome models.VoteOutcome
	err := l.store.WithTx(ctx, func(tx *db.Tx) error {
		var questionID int64
		err := tx.QueryRowContext(ctx, `
			SELECT question_id FROM answer WHERE id = ?
		`, answerID).Scan(&questionID)
		if errors.Is(err, sql.ErrNoRows) {
			outcome = models.VoteAnswerNotFound
			return nil
		}
		if err != nil {
			return fmt.Errorf("resolve answer: %w", err)
		}

		var voted bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM vote
				WHERE question_id = ? AND session_token = ?
			)
		`, questionID, sessionToken).Scan(&voted)
		if err != nil {
			return fmt.Errorf("check existing vote: %w", err)
		}
		if voted {
			outcome = models.VoteAlreadyVoted
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote (session_token, answer_id, question_id)
			VALUES (?, ?, ?)
		`, sessionToken, answerID, questionID)
		if err != nil {
			switch {
			case db.IsUniqueViolation(err):
				outcome = models.VoteAlreadyVoted
				return errVoteRejected
			case db.IsForeignKeyViolation(err):
				// The question was deleted after the answer was resolved.
				outcome = models.VoteAnswerNotFound
				return errVoteRejected
			}
			return fmt.Errorf("insert vote: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE answer SET counter = counter + 1 WHERE id = ?
		`, answerID)
		if err != nil {
			return fmt.Errorf("increment counter: %w", err)
		}

		outcome = models.VoteRecorded
		return nil
	})

	if errors.Is(err, errVoteRejected) {
		slog.Info("concurrent vote rejected", "answer_id", answerID, "outcome", outcome)
		return outcome, nil
	}
	if err != nil {
		// A commit can also lose the race on the primary key.
		if db.IsUniqueViolation(err) {
			return models.VoteAlreadyVoted, nil
		}
		slog.Error("failed to cast vote", "error", err, "answer_id", answerID)
		return "", unavailable("cast vote", err)
	}

	slog.Info("vote cast", "answer_id", answerID, "outcome", outcome)
	return outcome, nil
}
