// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"

	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/models"
)

// Aggregator builds per-answer tallies for a question.
type Aggregator struct {
	store *db.Store
}

func NewAggregator(store *db.Store) *Aggregator {
	return &Aggregator{store: store}
}

// statsRow is one row of the answer/vote join.
type statsRow struct {
	AnswerID int64
	Name     string
	Counter  int64
	Voted    bool
}

// GetStats returns the tallies of questionID annotated with the vote of
// sessionToken. Tallies stay hidden until the session has voted on the
// question, so the result is empty before that.
func (a *Aggregator) GetStats(ctx context.Context, questionID int64, sessionToken string) (models.Stats, error) {
	if sessionToken == "" {
		return models.Stats{}, nil
	}

	rows, err := a.store.QueryContext(ctx, `
		SELECT a.id, a.name, a.counter, v.session_token
		FROM answer a
		LEFT JOIN vote v ON v.answer_id = a.id AND v.session_token = ?
		WHERE a.question_id = ?
		ORDER BY a.id
	`, sessionToken, questionID)
	if err != nil {
		return nil, unavailable("get stats", err)
	}
	defer rows.Close()

	var scanned []statsRow
	for rows.Next() {
		var row statsRow
		var voter sql.NullString
		if err := rows.Scan(&row.AnswerID, &row.Name, &row.Counter, &voter); err != nil {
			return nil, unavailable("scan stats", err)
		}
		row.Voted = voter.Valid && voter.String == sessionToken
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("get stats", err)
	}

	stats, voted := collapseStats(scanned)
	if !voted {
		return models.Stats{}, nil
	}
	return stats, nil
}

// collapseStats folds join rows into one entry per answer. Once an answer
// is marked voted, later rows for it never clear the flag. The second result
// reports whether any answer was voted.
func collapseStats(rows []statsRow) (models.Stats, bool) {
	stats := models.Stats{}
	anyVoted := false
	for _, row := range rows {
		if existing, ok := stats[row.AnswerID]; ok && existing.Voted {
			continue
		}
		stats[row.AnswerID] = models.AnswerStats{
			Name:    row.Name,
			Counter: row.Counter,
			Voted:   row.Voted,
		}
		anyVoted = anyVoted || row.Voted
	}
	return stats, anyVoted
}
