// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/polls"
)

type StatsHandler struct {
	aggregator *polls.Aggregator
}

func NewStatsHandler(store *db.Store) *StatsHandler {
	return &StatsHandler{aggregator: polls.NewAggregator(store)}
}

// GetStats handles GET /stats/{id}
// Returns {} until the caller's session has voted on the question.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r)
	if !ok {
		return
	}

	stats, err := h.aggregator.GetStats(r.Context(), questionID, middleware.SessionToken(r))
	if err != nil {
		writeError(w, err, "get stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
