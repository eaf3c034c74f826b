package config

import (
	"testing"

	"github.com/goatpbn/paygate/internal/pkg/env"
)

func TestBackendBaseURLPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		server string
		public string
		want   string
	}{
		{name: "server wins", server: "https://internal.example.com", public: "https://public.example.com", want: "https://internal.example.com"},
		{name: "public fallback", server: "", public: "https://public.example.com", want: "https://public.example.com"},
		{name: "trailing slash trimmed", server: "https://internal.example.com/", public: "", want: "https://internal.example.com"},
		{name: "neither set", server: "", public: "", want: ""},
	}

	for _, tt := range tests {
		cfg := &Config{BackendServerURL: tt.server, BackendPublicURL: tt.public}
		if got := cfg.BackendBaseURL(); got != tt.want {
			t.Fatalf("%s: BackendBaseURL() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseOrigins(t *testing.T) {
	got := parseOrigins("")
	if len(got) != 2 || got[0] != "https://goatpbn.com" || got[1] != "https://www.goatpbn.com" {
		t.Fatalf("expected default origin pair, got %v", got)
	}

	got = parseOrigins(" https://a.example.com , https://b.example.com ,")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("expected trimmed origin list, got %v", got)
	}

	got = parseOrigins(" , ")
	if len(got) != 2 {
		t.Fatalf("expected defaults for blank-only list, got %v", got)
	}
}

func TestLoadAppliesProviderDefaults(t *testing.T) {
	env.Env = map[string]string{}
	t.Cleanup(func() { env.Env = nil })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.TossAPIBase != defaultTossAPIBase {
		t.Fatalf("expected default toss api base, got %q", cfg.TossAPIBase)
	}
	if cfg.TossTenantKey != defaultTossTenantKey {
		t.Fatalf("expected default tenant key, got %q", cfg.TossTenantKey)
	}
	if cfg.TossWebhookSecret != "" {
		t.Fatalf("expected webhook secret to default to empty, got %q", cfg.TossWebhookSecret)
	}
}
