package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config carries every environment-driven setting. It is loaded once in main
// and handed to the components that need it, never read ambiently.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        string `env:"PORT" envDefault:"4000"`

	// Comma-separated list of allowed browser origins.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	JWTSecret string `env:"JWT_SECRET,required"`

	Payment Payment `envPrefix:"PAYMENT_"`

	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Payment holds the gateway credentials. APIURL is overridable so tests can
// point the client at a stub server.
type Payment struct {
	SecretKey     string `env:"SECRET_KEY,required"`
	WebhookSecret string `env:"WEBHOOK_SECRET,required"`
	APIURL        string `env:"API_URL" envDefault:"https://api.stripe.com/v1"`
	Currency      string `env:"CURRENCY" envDefault:"usd"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// AllowedOrigins splits FRONTEND_URL into the CORS allow-list.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.FrontendURL, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
