package ctxkeys

import (
	"context"
	"testing"
)

func TestWithValue_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithValue(context.Background(), Subject, "alice")
	if got := String(ctx, Subject); got != "alice" {
		t.Fatalf("String(Subject) = %q; want alice", got)
	}
}

func TestString_MissingOrPlainStringKey(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // plain string key on purpose
	ctx := context.WithValue(context.Background(), "subject", "mallory")
	if got := String(ctx, Subject); got != "" {
		t.Fatalf("plain string key must not collide with ctxkeys.Subject, got %q", got)
	}
}
