package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/aalexmrt/portfolio/internal/config/env"

	envparse "github.com/caarlos0/env/v10"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// TurnstileVerifyURL is Cloudflare's siteverify endpoint
	TurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

	PlatformCloudflare = "cloudflare"
	PlatformGoogle     = "google"
	PlatformFlyIO      = "flyio"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	SiteDir     string `env:"SITE_DIR" envDefault:"./dist"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE" envDefault:"./logs/portfolio.log"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Email Configuration
	ResendAPIKey    string `env:"RESEND_API_KEY"`
	ResendFromEmail string `env:"RESEND_FROM_EMAIL" envDefault:"onboarding@resend.dev"`
	ContactToEmail  string `env:"CONTACT_TO_EMAIL" envDefault:"alexmartinez.mm98@gmail.com"`

	// Turnstile Configuration
	TurnstileSecretKey string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileSiteKey   string `env:"PUBLIC_TURNSTILE_SITE_KEY"`
	TurnstileVerifyURL string `env:"TURNSTILE_VERIFY_URL"`
	TurnstileBypass    bool   `env:"TURNSTILE_ALLOW_BYPASS" envDefault:"false"`

	// CORS Configuration
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Client IP resolution. Forwarding headers are ignored unless the
	// platform or the sending proxy is trusted.
	TrustedPlatform string   `env:"TRUSTED_PLATFORM"`
	TrustedProxies  []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	if _, err := env.LoadEnv(os.Getenv("ENV")); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse reads the configuration from the process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := envparse.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.Environment != EnvDevelopment && cfg.Environment != EnvProduction {
		return nil, fmt.Errorf("invalid ENV %q: must be %s or %s", cfg.Environment, EnvDevelopment, EnvProduction)
	}

	if cfg.TurnstileVerifyURL == "" {
		cfg.TurnstileVerifyURL = TurnstileVerifyURL
	}

	cfg.AllowedOrigins = compact(cfg.AllowedOrigins)
	cfg.TrustedProxies = compact(cfg.TrustedProxies)

	cfg.TrustedPlatform = strings.ToLower(strings.TrimSpace(cfg.TrustedPlatform))
	switch cfg.TrustedPlatform {
	case "", PlatformCloudflare, PlatformGoogle, PlatformFlyIO:
	default:
		return nil, fmt.Errorf("invalid TRUSTED_PLATFORM %q: must be %s, %s or %s",
			cfg.TrustedPlatform, PlatformCloudflare, PlatformGoogle, PlatformFlyIO)
	}

	for _, proxy := range cfg.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", proxy, err)
		}
	}

	return cfg, nil
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// EmailConfigured reports whether the email provider key is set
func (c *Config) EmailConfigured() bool {
	return c.ResendAPIKey != ""
}

// CaptchaConfigured reports whether Turnstile verification is enabled
func (c *Config) CaptchaConfigured() bool {
	return c.TurnstileSecretKey != ""
}
