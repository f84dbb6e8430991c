package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Aslan2004/Social_Network/pkg/apperrors"
	"github.com/Aslan2004/Social_Network/pkg/logger"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasMore     bool  `json:"hasMore"`
}

// NewPagination computes page math from the requested page/limit and the
// total document count.
func NewPagination(page, limit, total int64) *Pagination {
	if limit <= 0 {
		limit = 1
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasMore:     page*limit < total,
	}
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.WithError(err).Error("Failed to encode response")
	}
}

// respondSuccess writes a success envelope.
func respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// respondPage writes a success envelope carrying pagination metadata.
func respondPage(w http.ResponseWriter, data interface{}, p *Pagination) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data, Pagination: p})
}

// respondError writes a failure envelope with an explicit status.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// respondServiceError maps a service error onto an HTTP status. Anything
// outside the taxonomy is an internal error: logged server side, returned
// generically.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidOperation),
		errors.Is(err, apperrors.ErrConflict):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Log.WithError(err).Error("Unexpected error")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// parsePagination reads page and limit query parameters with the usual
// defaults and caps.
func parsePagination(r *http.Request) (page, limit int64) {
	page = 1
	limit = 10

	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
