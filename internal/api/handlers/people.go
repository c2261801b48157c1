package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/tool"
)

// PeopleHandler exposes the contacts service over REST.
// Every request makes the same single People API call as the matching MCP tool.
type PeopleHandler struct {
	svc *contacts.Service
}

func NewPeopleHandler(svc *contacts.Service) *PeopleHandler {
	return &PeopleHandler{svc: svc}
}

// ListPeople handles GET /api/v1/people?pageSize=&pageToken=&query=&personFields=&sources=
func (h *PeopleHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := contacts.ListRequest{
		PageToken:    q.Get("pageToken"),
		Query:        q.Get("query"),
		PersonFields: listParam(r, "personFields"),
		Sources:      listParam(r, "sources"),
	}
	if raw := q.Get("pageSize"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size < 0 {
			writeError(w, http.StatusBadRequest, "pageSize must be a non-negative integer")
			return
		}
		req.PageSize = size
	}

	res, err := h.svc.List(r.Context(), req)
	if err != nil {
		writeContactsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetPerson handles GET /api/v1/people/{id}
func (h *PeopleHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	name := resourceNameParam(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, errIDRequired)
		return
	}

	c, err := h.svc.Get(r.Context(), contacts.GetRequest{
		ResourceName: name,
		PersonFields: listParam(r, "personFields"),
	})
	if err != nil {
		writeContactsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreatePerson handles POST /api/v1/people
func (h *PeopleHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var in tool.CreateContactParams
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	res, err := h.svc.Create(r.Context(), in.Request())
	if err != nil {
		writeContactsError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// UpdatePerson handles PATCH /api/v1/people/{id}. The path wins over any resourceName in the body.
func (h *PeopleHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	name := resourceNameParam(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, errIDRequired)
		return
	}

	var in tool.UpdateContactParams
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	in.ResourceName = name

	res, err := h.svc.Update(r.Context(), in.Request())
	if err != nil {
		writeContactsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeletePerson handles DELETE /api/v1/people/{id}
func (h *PeopleHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	name := resourceNameParam(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, errIDRequired)
		return
	}

	res, err := h.svc.Delete(r.Context(), contacts.DeletionRequest{ResourceName: name})
	if err != nil {
		writeContactsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
