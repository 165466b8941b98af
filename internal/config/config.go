package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// AuthMode selects the identity provider wired at composition time.
const (
	AuthModeJWT  = "jwt"
	AuthModeMock = "mock"
)

type Config struct {
	Addr          string        `yaml:"addr" env:"MICROMENTOR_ADDR"`
	APITimeout    time.Duration `yaml:"timeout" env:"MICROMENTOR_TIMEOUT"`
	DatabasePath  string        `yaml:"database_path" env:"MICROMENTOR_DATABASE_PATH"`
	AuthMode      string        `yaml:"auth_mode" env:"MICROMENTOR_AUTH_MODE"`
	JWTSecret     string        `yaml:"jwt_secret" env:"MICROMENTOR_JWT_SECRET"`
	TokenDuration time.Duration `yaml:"token_duration" env:"MICROMENTOR_TOKEN_DURATION"`
	AI            AIConfig      `yaml:"ai"`
}

// AIConfig configures the insight generation collaborator. An empty BaseURL
// disables the model call and the canned fallback is always used.
type AIConfig struct {
	BaseURL string        `yaml:"base_url" env:"MICROMENTOR_AI_BASE_URL"`
	Model   string        `yaml:"model" env:"MICROMENTOR_AI_MODEL"`
	Timeout time.Duration `yaml:"timeout" env:"MICROMENTOR_AI_TIMEOUT"`
}

// LoadConfig builds the configuration from defaults, then an optional YAML
// file, then environment overrides (highest precedence).
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          ":8080",
		APITimeout:    15 * time.Second,
		DatabasePath:  "micromentor.db",
		AuthMode:      AuthModeMock,
		JWTSecret:     "supersecretkey",
		TokenDuration: 24 * time.Hour,
		AI: AIConfig{
			Model:   "llama3.2",
			Timeout: 20 * time.Second,
		},
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AuthMode != AuthModeJWT && cfg.AuthMode != AuthModeMock {
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}

	return cfg, nil
}
