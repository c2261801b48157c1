package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_InfoLevelDropsDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, Config{})

	l.Debug().Msg("hidden")
	l.Info().Str("tool", "delete-contact").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}

	var line map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", out, err)
	}
	if line["tool"] != "delete-contact" || line["message"] != "visible" {
		t.Fatalf("unexpected fields: %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Fatalf("expected timestamp field, got %v", line)
	}
}

func TestNew_DebugLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, Config{Debug: true})
	l.Debug().Msg("shown")

	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestNew_PrettyIsNotJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, Config{Pretty: true})
	l.Info().Msg("hello")

	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Fatalf("pretty output should not be JSON: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("missing message in %q", buf.String())
	}
}
