// Package config handles configuration loading and management for projectmgr.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for projectmgr.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig holds token signing and login throttling settings.
type AuthConfig struct {
	// JWTKey is the HMAC signing key. It may reference ${VAR}.
	JWTKey   string        `mapstructure:"jwt_key"`
	Issuer   string        `mapstructure:"issuer"`
	Audience string        `mapstructure:"audience"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// LoginRate is the sustained auth requests per second allowed per client.
	LoginRate  float64 `mapstructure:"login_rate"`
	LoginBurst int     `mapstructure:"login_burst"`
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File is an optional path; when set, logs are also appended there.
	File string `mapstructure:"file"`
}

const (
	appName           = "projectmgr"
	projectConfigName = ".projectmgr.yaml"
	defaultOrigins    = "http://localhost:5173,http://localhost:3000"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string][]string{
	"auth.jwt_key":  {"JWT_KEY"},
	"auth.issuer":   {"JWT_ISSUER"},
	"auth.audience": {"JWT_AUDIENCE"},
	"database.path": {"CONNECTION_STRING"},
	"cors.origins":  {"CORS_ORIGINS"},
	"server.addr":   {"PROJECTMGR_ADDR"},
	"log.level":     {"PROJECTMGR_LOG_LEVEL"},
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (JWT_KEY, CONNECTION_STRING, ...)
// 2. Project config (.projectmgr.yaml in current directory or parent)
// 3. User config (~/.config/projectmgr/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	return decode(v)
}

// LoadFromPath loads configuration from a specific file. Environment
// overrides still apply.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	return decode(v)
}

func bindEnv(v *viper.Viper) error {
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("binding env for %s: %w", key, err)
		}
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Auth.JWTKey = expandEnv(cfg.Auth.JWTKey)
	cfg.CORS.Origins = cleanOrigins(cfg.CORS.Origins)

	return cfg, nil
}

// cleanOrigins trims whitespace and drops empty entries.
// A single comma-separated entry is split.
func cleanOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, entry := range in {
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	return SaveToPath(cfg, GetUserConfigPath())
}

// SaveToPath writes the configuration to path, creating parent directories.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)

	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.shutdown_timeout", cfg.Server.ShutdownTimeout.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("auth.jwt_key", cfg.Auth.JWTKey)
	v.Set("auth.issuer", cfg.Auth.Issuer)
	v.Set("auth.audience", cfg.Auth.Audience)
	v.Set("auth.token_ttl", cfg.Auth.TokenTTL.String())
	v.Set("auth.login_rate", cfg.Auth.LoginRate)
	v.Set("auth.login_burst", cfg.Auth.LoginBurst)
	v.Set("cors.origins", cfg.CORS.Origins)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout.String())

	v.SetDefault("database.path", d.Database.Path)

	v.SetDefault("auth.jwt_key", "")
	v.SetDefault("auth.issuer", d.Auth.Issuer)
	v.SetDefault("auth.audience", d.Auth.Audience)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL.String())
	v.SetDefault("auth.login_rate", d.Auth.LoginRate)
	v.SetDefault("auth.login_burst", d.Auth.LoginBurst)

	v.SetDefault("cors.origins", defaultOrigins)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", "")
}

// getUserConfigDir returns the XDG config directory for projectmgr.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// DefaultDatabasePath returns the XDG data path for the database file.
func DefaultDatabasePath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName, appName+".db")
}

// findProjectConfig searches for .projectmgr.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, projectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: DefaultDatabasePath(),
		},
		Auth: AuthConfig{
			Issuer:     "ProjectManagementAPI",
			Audience:   "ProjectManagementClient",
			TokenTTL:   7 * 24 * time.Hour,
			LoginRate:  5,
			LoginBurst: 10,
		},
		CORS: CORSConfig{
			Origins: cleanOrigins([]string{defaultOrigins}),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
