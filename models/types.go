package models

// VoteOutcome is the result of casting a vote. AlreadyVoted is a normal
// outcome, not a failure.
type VoteOutcome string

const (
	VoteRecorded       VoteOutcome = "recorded"
	VoteAlreadyVoted   VoteOutcome = "already_voted"
	VoteAnswerNotFound VoteOutcome = "answer_not_found"
)

// Request types

// {"question": "...", "answers": ["...", ...]}
type CreateQuestionRequest struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

// Response types

type CreateQuestionResponse struct {
	QuestionID int64 `json:"question_id"`
}

type CastVoteResponse struct {
	Outcome VoteOutcome `json:"outcome"`
	Message string      `json:"message,omitempty"`
}

type DeleteQuestionResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Question struct {
	ID           int64  `json:"id"`
	Text         string `json:"text"`
	CreatorToken string `json:"-"` // Never expose in JSON
}

// QuestionSummary is one entry of the question list as seen by a session.
type QuestionSummary struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	CanDelete bool   `json:"canDelete"`
}

type AnswerRef struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// QuestionDetail maps the question text to its answers in id order.
// It is empty when the question does not exist.
type QuestionDetail map[string][]AnswerRef

type AnswerStats struct {
	Name    string `json:"name"`
	Counter int64  `json:"counter"`
	Voted   bool   `json:"voted"`
}

// Stats maps answer id to its tally. It is empty until the session has voted.
type Stats map[int64]AnswerStats

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
