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

type QuestionHandler struct {
	repo    *polls.Repository
	metrics *telemetry.Recorder
}

func NewQuestionHandler(store *db.Store, metrics *telemetry.Recorder) *QuestionHandler {
	return &QuestionHandler{repo: polls.NewRepository(store), metrics: metrics}
}

// ListQuestions handles GET /questions
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.repo.ListQuestions(r.Context(), middleware.SessionToken(r))
	if err != nil {
		writeError(w, err, "list questions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// CreateQuestion handles POST /questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	token, ok := sessionToken(w, r)
	if !ok {
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	questionID, err := h.repo.CreateQuestion(r.Context(), req.Question, req.Answers, token)
	if err != nil {
		writeError(w, err, "create question")
		return
	}
	h.metrics.QuestionCreated()

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: questionID,
	})
}

// GetQuestion handles GET /questions/{id}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.repo.GetQuestionDetail(r.Context(), questionID)
	if err != nil {
		writeError(w, err, "get question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// DeleteQuestion handles DELETE /questions/{id}
// Only the creating session may delete; anyone else gets deleted=false.
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.repo.DeleteQuestion(r.Context(), questionID, middleware.SessionToken(r))
	if err != nil {
		writeError(w, err, "delete question")
		return
	}

	if !deleted {
		middleware.JSONResponse(w, http.StatusOK, models.DeleteQuestionResponse{
			Deleted: false,
			Message: "question not found or not created by this session",
		})
		return
	}
	h.metrics.QuestionDeleted()

	middleware.JSONResponse(w, http.StatusOK, models.DeleteQuestionResponse{Deleted: true})
}
