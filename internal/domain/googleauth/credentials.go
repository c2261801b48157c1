// Package googleauth obtains and keeps the OAuth2 token used for the People API.
//
// The client secret JSON comes from the Google Cloud console ("Desktop app" or
// "Web application"). Tokens are stored per account in sqlite and refreshed
// tokens are written back so a restart does not require a new consent.
package googleauth

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	people "google.golang.org/api/people/v1"
)

// CallbackPath is where Google redirects after consent.
const CallbackPath = "/oauth2callback"

// Scopes requested during consent.
var Scopes = []string{people.ContactsScope}

var ErrCredentialsFile = errors.New("googleauth: cannot read OAuth client credentials")

// LoadClientConfig reads the OAuth client JSON at path and points its redirect URL
// at the local callback server on callbackAddr.
func LoadClientConfig(path, callbackAddr string) (*oauth2.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentialsFile, err)
	}
	return ClientConfigFromJSON(raw, callbackAddr)
}

// ClientConfigFromJSON is LoadClientConfig without the file read.
func ClientConfigFromJSON(raw []byte, callbackAddr string) (*oauth2.Config, error) {
	conf, err := google.ConfigFromJSON(raw, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentialsFile, err)
	}
	conf.RedirectURL = RedirectURL(callbackAddr)
	return conf, nil
}

// RedirectURL returns the callback URL registered for callbackAddr.
func RedirectURL(callbackAddr string) string {
	return "http://" + callbackAddr + CallbackPath
}
