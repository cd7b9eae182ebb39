// Package handler provides HTTP handlers for the review gateway.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sevigo/snapreview/internal/core"
)

// ReviewHandler serves POST /review.
type ReviewHandler struct {
	reviewer     core.Reviewer
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewReviewHandler creates a review handler. A maxBodyBytes of zero or less
// disables the body size limit.
func NewReviewHandler(reviewer core.Reviewer, maxBodyBytes int64, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewer:     reviewer,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Handle decodes a review request, runs the reviewer and maps the outcome to
// a status code. Every response body is a core.ReviewResponse.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req core.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("review request body too large", "limit", tooLarge.Limit)
			writeReview(w, http.StatusRequestEntityTooLarge, core.MsgBodyTooLarge)
			return
		}
		h.logger.Debug("could not decode review request", "error", err)
		writeReview(w, http.StatusBadRequest, core.MsgEmptyCode)
		return
	}

	resp, err := h.reviewer.Review(r.Context(), req)
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		writeReview(w, http.StatusBadRequest, core.MsgEmptyCode)
	case err != nil:
		h.logger.Error("failed to get review from model", "error", err, "language", req.Language)
		writeReview(w, http.StatusInternalServerError, core.MsgUpstreamFailure)
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeReview(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, core.ReviewResponse{Review: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
