package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/peoplebridge/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/peoplebridge/internal/api/middleware"
)

func TestRequestLogger_LogsStatusAndCopiesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = ctxkeys.String(r.Context(), ctxkeys.RequestID)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	})
	handler := chimw.RequestID(middleware.RequestLogger(zerolog.New(&buf))(inner))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/people/c1", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seenID != "req-42" {
		t.Errorf("request id in context = %q; want req-42", seenID)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["status"] != float64(http.StatusNotFound) {
		t.Errorf("status = %v; want 404", line["status"])
	}
	if line["method"] != http.MethodDelete || line["path"] != "/api/v1/people/c1" {
		t.Errorf("method/path = %v %v", line["method"], line["path"])
	}
	if line["bytes"] != float64(len(`{"error":"nope"}`)) {
		t.Errorf("bytes = %v", line["bytes"])
	}
	if line["level"] != "info" {
		t.Errorf("level = %v; want info", line["level"])
	}
}

func TestRequestLogger_ServerErrorsLogAtErrorLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	handler := middleware.RequestLogger(zerolog.New(&buf))(inner)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/people", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line["level"] != "error" {
		t.Errorf("level = %v; want error", line["level"])
	}
}
