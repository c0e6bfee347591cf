// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/handlers"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/telemetry"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	rec := telemetry.NewRecorder()
	rec.TrackPool(store.Stats)
	sessions := middleware.NewSessions(cfg)

	// Every API route: logging → metrics → session resolution → handler
	api := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(rec.Instrument(route, sessions.Wrap(h)))
	}

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(store, rec)
	votingHandler := handlers.NewVotingHandler(store, rec)
	statsHandler := handlers.NewStatsHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /metrics", rec.Handler())

	// Questions
	mux.HandleFunc("GET /questions", api("list_questions", questionHandler.ListQuestions))
	mux.HandleFunc("POST /questions", api("create_question", questionHandler.CreateQuestion))
	mux.HandleFunc("GET /questions/{id}", api("get_question", questionHandler.GetQuestion))
	mux.HandleFunc("DELETE /questions/{id}", api("delete_question", questionHandler.DeleteQuestion))

	// Voting and results
	mux.HandleFunc("POST /answers/{id}", api("cast_vote", votingHandler.CastVote))
	mux.HandleFunc("GET /stats/{id}", api("get_stats", statsHandler.GetStats))

	// Frontend, or a banner when none is configured
	if cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("quickpoll API v1"))
		})
	}

	return mux
}
