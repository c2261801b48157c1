package googleauth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/oauth2"
)

var (
	ErrTokenNotFound    = errors.New("googleauth: no token stored for account")
	ErrTokenKeyRequired = errors.New("googleauth: stored token is encrypted but no key is configured")
	ErrTokenDecrypt     = errors.New("googleauth: stored token cannot be decrypted with the configured key")
	ErrInvalidTokenKey  = errors.New("googleauth: token key must be 32 bytes, base64 encoded")
)

const nonceSize = 24

// TokenStore persists one OAuth2 token per account.
type TokenStore interface {
	Load(ctx context.Context, account string) (*oauth2.Token, error)
	Save(ctx context.Context, account string, tok *oauth2.Token) error
	Delete(ctx context.Context, account string) error
}

// SQLiteTokenStore keeps tokens in the oauth_token table.
// With a key, payloads are sealed with NaCl secretbox.
type SQLiteTokenStore struct {
	db  *sql.DB
	key *[32]byte
}

// NewSQLiteTokenStore returns a store over db. key may be nil to store tokens in clear.
func NewSQLiteTokenStore(db *sql.DB, key *[32]byte) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db, key: key}
}

// ParseKey decodes a base64 secretbox key. An empty string yields a nil key.
func ParseKey(encoded string) (*[32]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidTokenKey
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}

func (s *SQLiteTokenStore) Save(ctx context.Context, account string, tok *oauth2.Token) error {
	payload, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("googleauth: encode token: %w", err)
	}

	encrypted := 0
	if s.key != nil {
		var nonce [nonceSize]byte
		if _, err := rand.Read(nonce[:]); err != nil {
			return fmt.Errorf("googleauth: nonce: %w", err)
		}
		payload = secretbox.Seal(nonce[:], payload, &nonce, s.key)
		encrypted = 1
	}

	var expiresAt sql.NullString
	if !tok.Expiry.IsZero() {
		expiresAt = sql.NullString{String: tok.Expiry.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO oauth_token (account, encrypted, payload, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (account) DO UPDATE SET
			encrypted = excluded.encrypted,
			payload = excluded.payload,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, account, encrypted, payload, expiresAt, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("googleauth: save token: %w", err)
	}
	return nil
}

func (s *SQLiteTokenStore) Load(ctx context.Context, account string) (*oauth2.Token, error) {
	var (
		encrypted int
		payload   []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT encrypted, payload FROM oauth_token WHERE account = ?`, account,
	).Scan(&encrypted, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("googleauth: load token: %w", err)
	}

	if encrypted == 1 {
		if s.key == nil {
			return nil, ErrTokenKeyRequired
		}
		if len(payload) < nonceSize {
			return nil, ErrTokenDecrypt
		}
		var nonce [nonceSize]byte
		copy(nonce[:], payload[:nonceSize])
		opened, ok := secretbox.Open(nil, payload[nonceSize:], &nonce, s.key)
		if !ok {
			return nil, ErrTokenDecrypt
		}
		payload = opened
	}

	var tok oauth2.Token
	if err := json.Unmarshal(payload, &tok); err != nil {
		return nil, fmt.Errorf("googleauth: decode token: %w", err)
	}
	return &tok, nil
}

func (s *SQLiteTokenStore) Delete(ctx context.Context, account string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM oauth_token WHERE account = ?`, account); err != nil {
		return fmt.Errorf("googleauth: delete token: %w", err)
	}
	return nil
}
