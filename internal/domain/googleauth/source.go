package googleauth

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// TokenSource loads the stored token for account and returns a source that refreshes
// it through conf and writes every new token back to store.
// Refresh errors are returned unwrapped so callers still see *oauth2.RetrieveError.
func TokenSource(ctx context.Context, conf *oauth2.Config, store TokenStore, account string, log zerolog.Logger) (oauth2.TokenSource, error) {
	tok, err := store.Load(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("load token for %q: %w", account, err)
	}
	return &persistingSource{
		base:    conf.TokenSource(context.WithoutCancel(ctx), tok),
		store:   store,
		account: account,
		last:    tok.AccessToken,
		log:     log,
	}, nil
}

type persistingSource struct {
	base    oauth2.TokenSource
	store   TokenStore
	account string
	log     zerolog.Logger

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken == s.last {
		return tok, nil
	}
	s.last = tok.AccessToken
	// Save failures are logged; the refreshed token is still returned.
	if err := s.store.Save(context.Background(), s.account, tok); err != nil {
		s.log.Warn().Err(err).Str("account", s.account).Msg("persist refreshed token")
	} else {
		s.log.Debug().Str("account", s.account).Time("expiry", tok.Expiry).Msg("refreshed token saved")
	}
	return tok, nil
}
