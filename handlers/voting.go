// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/polls"
	"github.com/danielhkuo/quickpoll/telemetry"
)

type VotingHandler struct {
	ledger  *polls.Ledger
	metrics *telemetry.Recorder
}

func NewVotingHandler(store *db.Store, metrics *telemetry.Recorder) *VotingHandler {
	return &VotingHandler{ledger: polls.NewLedger(store), metrics: metrics}
}

// CastVote handles POST /answers/{id}
//
//	recorded         → 201
//	already_voted    → 200
//	answer_not_found → 404
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	answerID, ok := pathID(w, r)
	if !ok {
		return
	}
	token, ok := sessionToken(w, r)
	if !ok {
		return
	}

	outcome, err := h.ledger.CastVote(r.Context(), answerID, token)
	if err != nil {
		writeError(w, err, "cast vote")
		return
	}
	h.metrics.VoteCast(outcome)

	switch outcome {
	case models.VoteRecorded:
		middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{Outcome: outcome})
	case models.VoteAlreadyVoted:
		middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
			Outcome: outcome,
			Message: "this session already voted on the question",
		})
	default:
		middleware.JSONResponse(w, http.StatusNotFound, models.CastVoteResponse{
			Outcome: outcome,
			Message: "answer not found",
		})
	}
}
