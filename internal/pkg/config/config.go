package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goatpbn/paygate/internal/pkg/env"
)

const (
	defaultTossAPIBase   = "https://jjqugwegnpbwsxgclywg.supabase.co/functions/v1"
	defaultTossTenantKey = "tenant_key_goatpbn_ko"
)

// defaultAllowedOrigins is the storefront domain pair used when
// ALLOWED_ORIGINS is not configured.
var defaultAllowedOrigins = []string{"https://goatpbn.com", "https://www.goatpbn.com"}

// Config collects every environment option the gateway recognizes. It is
// resolved and validated once at startup and passed by reference into the
// components, so no handler re-reads the environment per request.
type Config struct {
	AppHost string `validate:"required"`
	AppPort string `validate:"required,numeric"`

	// Backend ledger addresses. The server-only address takes precedence
	// over the public one; both may be empty, in which case proxying fails
	// per request with a generic configuration error.
	BackendServerURL string
	BackendPublicURL string

	AllowedOrigins []string `validate:"required,min=1,dive,url"`

	TossAPIBase       string `validate:"required,url"`
	TossTenantKey     string `validate:"required"`
	TossWebhookSecret string

	CacheHost string
	CachePort string

	MetricsUser string
	MetricsPass string
}

// Load resolves the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppHost:           env.GetEnv("APP_HOST", "0.0.0.0"),
		AppPort:           env.GetEnv("APP_PORT", "4000"),
		BackendServerURL:  strings.TrimSpace(env.GetEnv("API_SERVER_URL", "")),
		BackendPublicURL:  strings.TrimSpace(env.GetEnv("PUBLIC_API_URL", "")),
		AllowedOrigins:    parseOrigins(env.GetEnv("ALLOWED_ORIGINS", "")),
		TossAPIBase:       strings.TrimSpace(env.GetEnv("TOSS_API_BASE", defaultTossAPIBase)),
		TossTenantKey:     strings.TrimSpace(env.GetEnv("TOSS_TENANT_KEY", defaultTossTenantKey)),
		TossWebhookSecret: strings.TrimSpace(env.GetEnv("TOSS_WEBHOOK_SECRET", "")),
		CacheHost:         env.GetEnv("CACHE_HOST", "localhost"),
		CachePort:         env.GetEnv("CACHE_PORT", "6379"),
		MetricsUser:       env.GetEnv("METRICS_USER", "admin"),
		MetricsPass:       env.GetEnv("METRICS_PASS", "admin"),
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// BackendBaseURL returns the resolved ledger base address, server-only
// address first. Empty means "not configured" and is reported per request
// without naming a variable.
func (c *Config) BackendBaseURL() string {
	base := c.BackendServerURL
	if base == "" {
		base = c.BackendPublicURL
	}
	return strings.TrimRight(base, "/")
}

func parseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		out := make([]string, len(defaultAllowedOrigins))
		copy(out, defaultAllowedOrigins)
		return out
	}
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if o := strings.TrimSpace(part); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		out := make([]string, len(defaultAllowedOrigins))
		copy(out, defaultAllowedOrigins)
		return out
	}
	return origins
}
