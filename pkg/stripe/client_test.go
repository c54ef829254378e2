package stripe

import (
	"context"
	"testing"

	"github.com/emberworks/storefront-backend/pkg/config"
)

func TestNormalizeEnv(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "", want: "test"},
		{raw: "Test", want: "test"},
		{raw: " live ", want: "live"},
		{raw: "staging", wantErr: true},
	}

	for _, tc := range tests {
		got, err := normalizeEnv(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("normalizeEnv(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestValidateAPIKey(t *testing.T) {
	if err := validateAPIKey("test", "sk_test_123"); err != nil {
		t.Fatalf("expected test key to validate: %v", err)
	}
	if err := validateAPIKey("test", "sk_live_123"); err == nil {
		t.Fatal("expected live key to be rejected in test env")
	}
	if err := validateAPIKey("live", "rk_live_123"); err != nil {
		t.Fatalf("expected live key to validate: %v", err)
	}
	if err := validateAPIKey("live", "sk_test_123"); err == nil {
		t.Fatal("expected test key to be rejected in live env")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.StripeConfig{Env: "test"}, nil)
	if err != errAPIKeyRequired {
		t.Fatalf("expected errAPIKeyRequired, got %v", err)
	}
}

func TestNewClientValid(t *testing.T) {
	client, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_test_abc", Env: "test"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Environment() != "test" {
		t.Fatalf("unexpected environment %q", client.Environment())
	}
	if client.API() == nil {
		t.Fatal("expected underlying api client")
	}
}
