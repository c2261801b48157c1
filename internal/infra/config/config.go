// Package config provides application-wide configuration.
// Values come from built-in defaults, then an optional YAML file, then env vars.
// All fields except secrets have safe defaults so the binary runs locally with minimal setup.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for peoplebridge.
type Config struct {
	// Google OAuth
	CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_OAUTH_CREDENTIALS"` // OAuth client JSON downloaded from Google Cloud
	Account         string `yaml:"account"          env:"PEOPLEBRIDGE_ACCOUNT"`     // key the stored token is saved under
	CallbackAddr    string `yaml:"callback_addr"    env:"PEOPLEBRIDGE_CALLBACK_ADDR"`
	TokenKey        string `yaml:"token_key"        env:"PEOPLEBRIDGE_TOKEN_KEY"` // base64, 32 bytes; empty stores tokens unencrypted

	// Storage
	DBPath string `yaml:"db_path" env:"PEOPLEBRIDGE_DB_PATH"`

	// HTTP API
	HTTPAddr  string        `yaml:"http_addr"  env:"PEOPLEBRIDGE_HTTP_ADDR"`
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTExpiry time.Duration `yaml:"jwt_expiry" env:"JWT_EXPIRY"`

	// Logging
	LogDebug  bool `yaml:"log_debug"  env:"LOG_DEBUG"`
	LogPretty bool `yaml:"log_pretty" env:"LOG_PRETTY"`
}

const envKeyConfigFile = "PEOPLEBRIDGE_CONFIG"

var (
	ErrMissingCredentials = errors.New("GOOGLE_OAUTH_CREDENTIALS is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		CredentialsFile: "gcp-oauth.keys.json",
		Account:         "default",
		CallbackAddr:    "localhost:3000",
		DBPath:          "peoplebridge.db",
		HTTPAddr:        "127.0.0.1:8080",
		JWTExpiry:       24 * time.Hour,
	}
}

// Load reads the file named by PEOPLEBRIDGE_CONFIG (if any) and applies env overrides.
func Load() (Config, error) {
	return LoadFile(os.Getenv(envKeyConfigFile))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	// No envDefault tags: unset variables leave file/default values in place.
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	return cfg, nil
}

// RequireCredentials reports whether the Google OAuth client file is configured.
func (c Config) RequireCredentials() error {
	if c.CredentialsFile == "" {
		return ErrMissingCredentials
	}
	return nil
}

// RequireJWT reports whether the HTTP API can authenticate callers.
func (c Config) RequireJWT() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}
