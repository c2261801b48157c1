package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
)

func TestPeopleHandler_DeletePerson(t *testing.T) {
	t.Parallel()

	api := &fakePeople{}
	handler := NewPeopleHandler(newService(api))

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/people/c123", nil), paramID, "c123")
	w := httptest.NewRecorder()
	handler.DeletePerson(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("DeletePerson status = %d; want 200 (body %s)", w.Code, w.Body.String())
	}
	res := decodeBody[contacts.DeletionResult](t, w)
	if !res.Success || res.Message != "Contact people/c123 deleted successfully" {
		t.Errorf("DeletePerson body = %+v", res)
	}
	if calls := api.Calls(); len(calls) != 1 || calls[0] != "delete people/c123" {
		t.Errorf("calls = %v; want one delete of people/c123", calls)
	}
}

func TestPeopleHandler_DeletePerson_MapsRemoteErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
		kind string
	}{
		{"not found", &googleapi.Error{Code: 404, Message: "Requested entity was not found."}, http.StatusNotFound, "not_found"},
		{"expired token", &googleapi.Error{Code: 401}, http.StatusUnauthorized, "unauthenticated"},
		{"quota", &googleapi.Error{Code: 429}, http.StatusTooManyRequests, "rate_limited"},
		{"no credentials", contacts.ErrNoCredentials, http.StatusUnauthorized, "unauthenticated"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := NewPeopleHandler(newService(&fakePeople{err: tc.err}))
			req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/people/c1", nil), paramID, "c1")
			w := httptest.NewRecorder()
			handler.DeletePerson(w, req)

			if w.Code != tc.want {
				t.Fatalf("status = %d; want %d", w.Code, tc.want)
			}
			body := decodeBody[ErrorResponse](t, w)
			if body.Kind != tc.kind || body.Error == "" {
				t.Errorf("body = %+v; want kind %s", body, tc.kind)
			}
		})
	}
}

func TestPeopleHandler_MissingID(t *testing.T) {
	t.Parallel()

	api := &fakePeople{}
	handler := NewPeopleHandler(newService(api))

	for name, fn := range map[string]http.HandlerFunc{
		"get":    handler.GetPerson,
		"update": handler.UpdatePerson,
		"delete": handler.DeletePerson,
	} {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/people/", strings.NewReader(`{}`)), paramID, " ")
		w := httptest.NewRecorder()
		fn(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d; want 400", name, w.Code)
		}
	}
	if len(api.Calls()) != 0 {
		t.Errorf("calls = %v; want none", api.Calls())
	}
}

func TestPeopleHandler_ListPeople(t *testing.T) {
	t.Parallel()

	api := &fakePeople{}
	handler := NewPeopleHandler(newService(api))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/people?pageSize=20&pageToken=tok&personFields=names,emailAddresses", nil)
	w := httptest.NewRecorder()
	handler.ListPeople(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("ListPeople status = %d; want 200", w.Code)
	}
	res := decodeBody[contacts.ListResult](t, w)
	if len(res.Contacts) != 2 || res.NextPageToken != "next" || res.TotalItems != 2 {
		t.Errorf("ListPeople body = %+v", res)
	}
	if api.lastList.PageSize != 20 || api.lastList.PageToken != "tok" || len(api.lastList.PersonFields) != 2 {
		t.Errorf("query = %+v", api.lastList)
	}
}

func TestPeopleHandler_ListPeople_SearchAndBadPageSize(t *testing.T) {
	t.Parallel()

	api := &fakePeople{}
	handler := NewPeopleHandler(newService(api))

	w := httptest.NewRecorder()
	handler.ListPeople(w, httptest.NewRequest(http.MethodGet, "/api/v1/people?query=grace", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d; want 200", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ListPeople(w, httptest.NewRequest(http.MethodGet, "/api/v1/people?pageSize=lots", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad pageSize status = %d; want 400", w.Code)
	}

	if calls := api.Calls(); len(calls) != 1 || calls[0] != "search grace" {
		t.Errorf("calls = %v; want one search", calls)
	}
}

func TestPeopleHandler_GetPerson(t *testing.T) {
	t.Parallel()

	api := &fakePeople{}
	handler := NewPeopleHandler(newService(api))

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/people/c3?personFields=names", nil), paramID, "c3")
	w := httptest.NewRecorder()
	handler.GetPerson(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GetPerson status = %d; want 200", w.Code)
	}
	c := decodeBody[contacts.Contact](t, w)
	if c.ResourceName != "people/c3" || c.DisplayName != "Ada Lovelace" {
		t.Errorf("GetPerson body = %+v", c)
	}
	if len(api.lastMask) != 1 || api.lastMask[0] != "names" {
		t.Errorf("personFields = %v; want [names]", api.lastMask)
	}
}

func TestPeopleHandler_CreatePerson(t *testing.T) {
	t.Parallel()

	api := &fakePeople{}
	handler := NewPeopleHandler(newService(api))

	body := `{"givenName":"Grace","familyName":"Hopper","emailAddresses":[{"value":"grace@example.com"}]}`
	w := httptest.NewRecorder()
	handler.CreatePerson(w, httptest.NewRequest(http.MethodPost, "/api/v1/people", strings.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("CreatePerson status = %d; want 201 (body %s)", w.Code, w.Body.String())
	}
	res := decodeBody[contacts.MutationResult](t, w)
	if !res.Success || res.Contact.ResourceName != "people/c900" {
		t.Errorf("CreatePerson body = %+v", res)
	}
	if api.lastSent == nil || api.lastSent.EmailAddresses[0].Value != "grace@example.com" {
		t.Errorf("sent person = %+v", api.lastSent)
	}

	w = httptest.NewRecorder()
	handler.CreatePerson(w, httptest.NewRequest(http.MethodPost, "/api/v1/people", strings.NewReader(`{`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid body status = %d; want 400", w.Code)
	}
}

func TestPeopleHandler_UpdatePerson_PathWins(t *testing.T) {
	t.Parallel()

	api := &fakePeople{}
	handler := NewPeopleHandler(newService(api))

	body := `{"resourceName":"people/other","updatePersonFields":["names"],"givenName":"Ada"}`
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/v1/people/c1", strings.NewReader(body)), paramID, "c1")
	w := httptest.NewRecorder()
	handler.UpdatePerson(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("UpdatePerson status = %d; want 200 (body %s)", w.Code, w.Body.String())
	}
	calls := api.Calls()
	if len(calls) != 2 || calls[0] != "get people/c1" || calls[1] != "update people/c1" {
		t.Errorf("calls = %v; want get then update of people/c1", calls)
	}
}

func TestPeopleHandler_UpdatePerson_NoFields(t *testing.T) {
	t.Parallel()

	api := &fakePeople{}
	handler := NewPeopleHandler(newService(api))

	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/v1/people/c1", strings.NewReader(`{}`)), paramID, "c1")
	w := httptest.NewRecorder()
	handler.UpdatePerson(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if len(api.Calls()) != 0 {
		t.Errorf("calls = %v; want none", api.Calls())
	}
}
