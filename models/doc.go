// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateQuestionRequest: question, answers (2-6 strings)

# Response Types

  - CreateQuestionResponse: question_id
  - CastVoteResponse: outcome, message
  - DeleteQuestionResponse: deleted, message
  - ErrorResponse: error, message

# Domain Types

  - Question: text and creator session token (never serialized)
  - QuestionSummary: list entry with canDelete for the calling session
  - QuestionDetail: {questionText: [{id, text}, ...]}
  - Stats: {answerId: {name, counter, voted}}

# Vote Outcomes

	VoteRecorded       = "recorded"
	VoteAlreadyVoted   = "already_voted"
	VoteAnswerNotFound = "answer_not_found"
*/
package models
