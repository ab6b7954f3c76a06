package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

type Config struct {
	Port           string  `envconfig:"PORT" default:"8080"`
	Env            string  `envconfig:"ENV" default:"development"`
	JWTSecret      string  `envconfig:"JWT_SECRET"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
	DefaultLength  int     `envconfig:"DEFAULT_LENGTH" default:"16"`
	MaxCount       int     `envconfig:"MAX_COUNT" default:"20"`
}

// AuthEnabled reports whether API routes require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DefaultLength < crypto.MinLength || c.DefaultLength > crypto.MaxLength {
		return fmt.Errorf("DEFAULT_LENGTH must be between %d and %d, got %d",
			crypto.MinLength, crypto.MaxLength, c.DefaultLength)
	}
	if c.MaxCount < 1 {
		return fmt.Errorf("MAX_COUNT must be positive, got %d", c.MaxCount)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit must be positive, got %v rps burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}
	if c.Env == "production" && !c.AuthEnabled() {
		return fmt.Errorf("JWT_SECRET must be set in production environment")
	}
	return nil
}
