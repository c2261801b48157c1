package contacts_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/eventbus"
)

// peopleServer is a local stand-in for people.googleapis.com that counts requests.
type peopleServer struct {
	*httptest.Server
	calls atomic.Int32
}

func newPeopleServer(t *testing.T, h http.HandlerFunc) *peopleServer {
	t.Helper()
	ps := &peopleServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(ps.Close)
	return ps
}

func newTestService(t *testing.T, ps *peopleServer, bus eventbus.EventBus) *contacts.Service {
	t.Helper()
	api, err := contacts.NewPeopleClient(context.Background(), nil,
		option.WithEndpoint(ps.URL+"/"),
		option.WithHTTPClient(ps.Client()),
	)
	require.NoError(t, err)
	return contacts.NewService(api, bus, zerolog.Nop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, body)
}

func writeAPIError(w http.ResponseWriter, code int, status, msg string) {
	writeJSON(w, code, fmt.Sprintf(`{"error":{"code":%d,"message":%q,"status":%q}}`, code, msg, status))
}
