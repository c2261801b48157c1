package googleauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/matiasleandrokruk/peoplebridge/internal/server"
)

var (
	ErrStateMismatch  = errors.New("googleauth: state mismatch in callback")
	ErrConsentDenied  = errors.New("googleauth: consent denied")
	ErrMissingCode    = errors.New("googleauth: callback has no authorization code")
	ErrNoRefreshToken = errors.New("googleauth: token has no refresh token")
)

const shutdownTimeout = 5 * time.Second

// ConsentFlow runs the installed-app authorization code flow against a local callback.
type ConsentFlow struct {
	conf    *oauth2.Config
	store   TokenStore
	account string
	log     zerolog.Logger
}

func NewConsentFlow(conf *oauth2.Config, store TokenStore, account string, log zerolog.Logger) *ConsentFlow {
	return &ConsentFlow{conf: conf, store: store, account: account, log: log}
}

// AuthCodeURL asks for offline access and forces the consent screen so a refresh token is issued.
func (f *ConsentFlow) AuthCodeURL(state string) string {
	return f.conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades code for a token and stores it for the flow's account.
func (f *ConsentFlow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := f.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("googleauth: exchange code: %w", err)
	}
	if tok.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	if err := f.store.Save(ctx, f.account, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// Handler serves CallbackPath. The first callback carrying state has its outcome
// sent on done, which should have a buffer of one. Callbacks with any other state
// are rejected without ending the flow.
func (f *ConsentFlow) Handler(state string, done chan<- error) http.Handler {
	r := chi.NewRouter()
	r.Get(CallbackPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			f.log.Warn().Str("remote", r.RemoteAddr).Msg("oauth callback with unexpected state ignored")
			http.Error(w, "Authentication failed: "+ErrStateMismatch.Error(), http.StatusBadRequest)
			return
		}

		err := f.handleCallback(r)
		select {
		case done <- err:
		default:
		}

		if err != nil {
			f.log.Warn().Err(err).Msg("oauth callback failed")
			http.Error(w, "Authentication failed: "+err.Error(), http.StatusBadRequest)
			return
		}
		f.log.Info().Str("account", f.account).Msg("oauth token stored")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "Authentication successful. You can close this window.\n")
	})
	return r
}

func (f *ConsentFlow) handleCallback(r *http.Request) error {
	q := r.URL.Query()
	if reason := q.Get("error"); reason != "" {
		return fmt.Errorf("%w: %s", ErrConsentDenied, reason)
	}
	code := q.Get("code")
	if code == "" {
		return ErrMissingCode
	}
	_, err := f.Exchange(r.Context(), code)
	return err
}

// Run serves the callback on addr, writes the consent URL to out and waits for
// the callback or for ctx to end.
func (f *ConsentFlow) Run(ctx context.Context, addr string, out io.Writer) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("googleauth: listen on %s: %w", addr, err)
	}

	state := uuid.NewString()
	done := make(chan error, 1)
	srv := server.New(f.Handler(state, done), server.DefaultConfig(addr), f.log)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	_, _ = fmt.Fprintf(out, "Open this URL in your browser to authorize access to your contacts:\n\n%s\n\n", f.AuthCodeURL(state))

	var result error
	select {
	case result = <-done:
	case result = <-serveErr:
		if result == nil {
			result = errors.New("googleauth: callback server stopped")
		}
	case <-ctx.Done():
		result = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		f.log.Warn().Err(err).Msg("callback server shutdown")
	}
	return result
}
