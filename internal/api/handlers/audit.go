package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/audit"
)

// AuditHandler serves the mutation audit trail.
type AuditHandler struct {
	svc *audit.AuditService
}

func NewAuditHandler(svc *audit.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// ListEvents handles GET /api/v1/audit?resourceName=people/c1 or ?actor=<subject>.
// One of the two filters is required.
func (h *AuditHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := parseLimit(r)

	var (
		events []*audit.AuditEvent
		err    error
	)
	switch {
	case q.Get("resourceName") != "":
		events, err = h.svc.ListByResource(r.Context(), q.Get("resourceName"), limit)
	case q.Get("actor") != "":
		events, err = h.svc.ListByActor(r.Context(), q.Get("actor"), limit)
	default:
		writeError(w, http.StatusBadRequest, "resourceName or actor is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit events")
		return
	}
	if events == nil {
		events = []*audit.AuditEvent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": events, "meta": map[string]int{"total": len(events)}})
}

// GetEvent handles GET /api/v1/audit/{id}
func (h *AuditHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	evt, err := h.svc.GetByID(r.Context(), chi.URLParam(r, paramID))
	if errors.Is(err, audit.ErrAuditEventNotFound) {
		writeError(w, http.StatusNotFound, "audit event not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get audit event")
		return
	}
	writeJSON(w, http.StatusOK, evt)
}
