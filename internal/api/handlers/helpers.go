// Package handlers implements the JSON HTTP endpoints under /api/v1.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
)

const (
	headerContentType = "Content-Type"
	mimeJSON          = "application/json"

	paramID   = "id"
	paramName = "name"

	errInvalidBody    = "invalid request body"
	errFailedToEncode = "failed to encode response"
	errIDRequired     = "contact id is required"
)

const (
	defaultPaginationLimit = 50
	maxPaginationLimit     = 500
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Status int    `json:"upstreamStatus,omitempty"`
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set(headerContentType, mimeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeContactsError maps a normalized People API failure onto an HTTP status.
// Errors that are not *contacts.APIError become 500.
func writeContactsError(w http.ResponseWriter, err error) {
	var apiErr *contacts.APIError
	if !errors.As(err, &apiErr) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, statusForKind(apiErr.Kind), ErrorResponse{
		Error:  apiErr.Error(),
		Kind:   string(apiErr.Kind),
		Status: apiErr.Status,
	})
}

func statusForKind(k contacts.Kind) int {
	switch k {
	case contacts.KindNotFound:
		return http.StatusNotFound
	case contacts.KindUnauthenticated:
		return http.StatusUnauthorized
	case contacts.KindPermissionDenied:
		return http.StatusForbidden
	case contacts.KindInvalidArgument:
		return http.StatusBadRequest
	case contacts.KindRateLimited:
		return http.StatusTooManyRequests
	case contacts.KindUnavailable:
		return http.StatusServiceUnavailable
	case contacts.KindTransport:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// resourceNameParam turns the {id} path segment into "people/<id>".
// It returns "" when the segment is missing.
func resourceNameParam(r *http.Request) string {
	id := strings.TrimSpace(chi.URLParam(r, paramID))
	if id == "" {
		return ""
	}
	return "people/" + id
}

// listParam splits a comma separated query value. Repeated keys are merged.
func listParam(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseLimit reads ?limit=, falling back to the default and clamping to the max.
func parseLimit(r *http.Request) int {
	limit := defaultPaginationLimit
	if lim, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && lim > 0 {
		limit = min(lim, maxPaginationLimit)
	}
	return limit
}
