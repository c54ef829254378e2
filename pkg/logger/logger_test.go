package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestErrorCarriesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithUserID(ctx, "user-9")
	ctx = log.WithSessionID(ctx, "cs_test_abc")

	log.Error(ctx, "session fetch failed", errors.New("timeout"))

	for _, field := range []string{`"request_id"`, `"user_id"`, `"checkout_session_id"`} {
		if !bytes.Contains(buf.Bytes(), []byte(field)) {
			t.Fatalf("expected %s in entry; got %s", field, buf.String())
		}
	}
}

func TestWithFieldsAccumulate(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithFields(context.Background(), map[string]any{"env": "dev", "addr": ":8080"})
	log.Info(ctx, "starting")

	if !bytes.Contains(buf.Bytes(), []byte(`"env":"dev"`)) {
		t.Fatalf("expected env field; got %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"addr":":8080"`)) {
		t.Fatalf("expected addr field; got %s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for empty input, got %v", lvl)
	}
	if lvl := ParseLevel("invalid"); lvl != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for invalid input, got %v", lvl)
	}
	if lvl := ParseLevel("warn"); lvl != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", lvl)
	}
}
