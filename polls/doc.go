// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls implements questions, the vote ledger and vote statistics.

Nothing here knows about HTTP. Every operation takes a context and the
caller's session token, an opaque string compared only for equality.

# Questions

	repo := polls.NewRepository(store)
	id, err := repo.CreateQuestion(ctx, "Best color?", []string{"Red", "Blue"}, token)

A question is created with 2 to 6 answers in a single transaction. Only the
creating session can delete it; deletion removes its answers and votes.

# Voting

	ledger := polls.NewLedger(store)
	outcome, err := ledger.CastVote(ctx, answerID, token)

The outcome is VoteRecorded, VoteAlreadyVoted or VoteAnswerNotFound. A
session gets one vote per question, across all of its answers; later casts
are rejected, never switched. The vote primary key enforces this across
processes sharing the store.

# Statistics

	stats, err := polls.NewAggregator(store).GetStats(ctx, questionID, token)

Stats are empty until the session has voted on the question.

# Errors

  - ErrValidation: bad input, not retried
  - ErrStoreUnavailable: the store failed or the pool wait was cancelled
*/
package polls
