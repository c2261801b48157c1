package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/tool"
)

const maxToolParamsBytes = 1 << 20

type ToolHandler struct {
	registry *tool.ToolRegistry
}

func NewToolHandler(registry *tool.ToolRegistry) *ToolHandler {
	return &ToolHandler{registry: registry}
}

// ListTools handles GET /api/v1/tools
func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	items := h.registry.ListToolDefinitions()
	writeJSON(w, http.StatusOK, map[string]any{"data": items, "meta": map[string]int{"total": len(items)}})
}

// ExecuteTool handles POST /api/v1/tools/{name}. The body is the tool's params object.
func (h *ToolHandler) ExecuteTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, paramName)

	params, err := io.ReadAll(io.LimitReader(r.Body, maxToolParamsBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	out, err := h.registry.Execute(r.Context(), name, json.RawMessage(params))
	switch {
	case err == nil:
		w.Header().Set(headerContentType, mimeJSON)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	case errors.Is(err, tool.ErrToolExecutorNotRegistered):
		writeError(w, http.StatusNotFound, "unknown tool: "+name)
	case errors.Is(err, tool.ErrToolValidationFailed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, contacts.ErrRemoteAPI):
		writeContactsError(w, err)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
