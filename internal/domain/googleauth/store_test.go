package googleauth_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/googleauth"
)

func testKey(t *testing.T, fill byte) *[32]byte {
	t.Helper()
	key, err := googleauth.ParseKey(base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{fill}, 32)))
	require.NoError(t, err)
	return key
}

func sampleToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  "ya29.access",
		TokenType:    "Bearer",
		RefreshToken: "1//refresh",
		Expiry:       time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteTokenStore_RoundTrip(t *testing.T) {
	for name, key := range map[string]*[32]byte{"plain": nil, "encrypted": testKey(t, 7)} {
		t.Run(name, func(t *testing.T) {
			store := googleauth.NewSQLiteTokenStore(openDB(t), key)
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, "default", sampleToken()))
			got, err := store.Load(ctx, "default")
			require.NoError(t, err)

			want := sampleToken()
			assert.Equal(t, want.AccessToken, got.AccessToken)
			assert.Equal(t, want.RefreshToken, got.RefreshToken)
			assert.True(t, want.Expiry.Equal(got.Expiry))
		})
	}
}

func TestSQLiteTokenStore_EncryptedPayloadHidesToken(t *testing.T) {
	db := openDB(t)
	store := googleauth.NewSQLiteTokenStore(db, testKey(t, 1))
	require.NoError(t, store.Save(context.Background(), "default", sampleToken()))

	var encrypted int
	var payload []byte
	require.NoError(t, db.QueryRow(`SELECT encrypted, payload FROM oauth_token WHERE account = 'default'`).Scan(&encrypted, &payload))
	assert.Equal(t, 1, encrypted)
	assert.NotContains(t, string(payload), "ya29.access")
}

func TestSQLiteTokenStore_KeyErrors(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	require.NoError(t, googleauth.NewSQLiteTokenStore(db, testKey(t, 1)).Save(ctx, "default", sampleToken()))

	_, err := googleauth.NewSQLiteTokenStore(db, nil).Load(ctx, "default")
	assert.ErrorIs(t, err, googleauth.ErrTokenKeyRequired)

	_, err = googleauth.NewSQLiteTokenStore(db, testKey(t, 2)).Load(ctx, "default")
	assert.ErrorIs(t, err, googleauth.ErrTokenDecrypt)
}

func TestSQLiteTokenStore_OverwriteAndDelete(t *testing.T) {
	store := googleauth.NewSQLiteTokenStore(openDB(t), nil)
	ctx := context.Background()

	_, err := store.Load(ctx, "default")
	assert.ErrorIs(t, err, googleauth.ErrTokenNotFound)

	require.NoError(t, store.Save(ctx, "default", sampleToken()))
	next := sampleToken()
	next.AccessToken = "ya29.second"
	require.NoError(t, store.Save(ctx, "default", next))

	got, err := store.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "ya29.second", got.AccessToken)

	require.NoError(t, store.Delete(ctx, "default"))
	_, err = store.Load(ctx, "default")
	assert.ErrorIs(t, err, googleauth.ErrTokenNotFound)
}

func TestParseKey(t *testing.T) {
	key, err := googleauth.ParseKey("")
	require.NoError(t, err)
	assert.Nil(t, key)

	_, err = googleauth.ParseKey("not base64!")
	assert.ErrorIs(t, err, googleauth.ErrInvalidTokenKey)

	_, err = googleauth.ParseKey(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorIs(t, err, googleauth.ErrInvalidTokenKey)
}
