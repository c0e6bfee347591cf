// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the quickpoll API.

# Handler Types

  - QuestionHandler: list, create, read and delete questions
  - VotingHandler: cast votes
  - StatsHandler: per-answer tallies

	questionHandler := handlers.NewQuestionHandler(store, rec)

Handlers read the caller's session from middleware.SessionToken, so routes
must be wrapped with middleware.Sessions.

# Status Codes

	polls.ErrValidation       → 400
	polls.ErrStoreUnavailable → 503
	missing session           → 401
	malformed {id}            → 400

A vote answers 201 when recorded, 200 when the session already voted on
the question, and 404 when the answer does not exist. Deleting a question
the session did not create answers 200 with deleted=false.
*/
package handlers
