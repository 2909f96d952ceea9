package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// MinJWTKeyLength is the shortest accepted signing key, in bytes.
const MinJWTKeyLength = 32

var (
	// ErrNoJWTKey is returned when no signing key is configured.
	ErrNoJWTKey = errors.New("no JWT signing key configured")
	// ErrWeakJWTKey is returned when the signing key is too short.
	ErrWeakJWTKey = errors.New("JWT signing key too short")
)

// GetJWTKey returns the signing key from the configuration.
// It checks in order: environment variable, config file.
func GetJWTKey(cfg *Config) (string, error) {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return key, nil
	}

	if cfg != nil && cfg.Auth.JWTKey != "" {
		key := os.ExpandEnv(cfg.Auth.JWTKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return key, nil
		}
	}

	return "", ErrNoJWTKey
}

// ValidateJWTKey checks that a signing key is present and long enough for HS256.
func ValidateJWTKey(key string) error {
	if key == "" {
		return ErrNoJWTKey
	}
	if len(key) < MinJWTKeyLength {
		return fmt.Errorf("%w: need at least %d characters, got %d", ErrWeakJWTKey, MinJWTKeyLength, len(key))
	}
	return nil
}

// MaskSecret returns a masked version of a secret for display.
// Shows the first 4 and last 4 characters.
func MaskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}

	if len(secret) <= 12 {
		return "***"
	}

	return secret[:4] + "..." + secret[len(secret)-4:]
}

// KeySource represents where the signing key was loaded from.
type KeySource string

const (
	KeySourceEnv    KeySource = "environment"
	KeySourceConfig KeySource = "config_file"
	KeySourceNone   KeySource = "none"
)

// GetJWTKeySource returns where the signing key was sourced from.
func GetJWTKeySource(cfg *Config) KeySource {
	if os.Getenv("JWT_KEY") != "" {
		return KeySourceEnv
	}

	if cfg != nil && cfg.Auth.JWTKey != "" {
		key := os.ExpandEnv(cfg.Auth.JWTKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return KeySourceConfig
		}
	}

	return KeySourceNone
}
