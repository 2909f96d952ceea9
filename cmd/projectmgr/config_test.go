package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nishant152030/Project-manager-2/internal/config"
	"github.com/nishant152030/Project-manager-2/internal/state"
)

func TestGetConfigValue(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.JWTKey = "abcdefghijklmnopqrstuvwxyz0123456789"

	tests := []struct {
		key  string
		want string
	}{
		{"server.addr", ":8080"},
		{"SERVER.ADDR", ":8080"},
		{"server.shutdown_timeout", "10s"},
		{"auth.issuer", "ProjectManagementAPI"},
		{"auth.token_ttl", "168h0m0s"},
		{"auth.login_rate", "5"},
		{"auth.login_burst", "10"},
		{"auth.jwt_key", "abcd...6789"},
		{"cors.origins", "http://localhost:5173,http://localhost:3000"},
		{"log.level", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := getConfigValue(cfg, tt.key)
			if err != nil {
				t.Fatalf("getConfigValue(%q) error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("getConfigValue(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if _, err := getConfigValue(cfg, "nope.nothing"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestSetConfigValue(t *testing.T) {
	cfg := config.Default()

	valid := map[string]string{
		"server.addr":             ":9090",
		"server.shutdown_timeout": "30s",
		"auth.token_ttl":          "1h",
		"auth.login_rate":         "0.5",
		"auth.login_burst":        "3",
		"cors.origins":            " https://a.example.com , https://b.example.com ,",
		"log.level":               "debug",
		"auth.jwt_key":            "${MY_SIGNING_KEY}",
	}
	for key, value := range valid {
		if err := setConfigValue(cfg, key, value); err != nil {
			t.Errorf("setConfigValue(%q, %q) error = %v", key, value, err)
		}
	}

	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Auth.LoginRate != 0.5 {
		t.Errorf("LoginRate = %v, want 0.5", cfg.Auth.LoginRate)
	}
	if len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[1] != "https://b.example.com" {
		t.Errorf("Origins = %v", cfg.CORS.Origins)
	}

	invalid := map[string]string{
		"server.shutdown_timeout": "soon",
		"auth.login_rate":         "-1",
		"auth.login_burst":        "many",
		"log.level":               "loud",
		"auth.jwt_key":            "short",
		"unknown.key":             "x",
	}
	for key, value := range invalid {
		if err := setConfigValue(cfg, key, value); err == nil {
			t.Errorf("setConfigValue(%q, %q) expected error", key, value)
		}
	}
}

func TestDisplayAllConfig_MasksKey(t *testing.T) {
	t.Setenv("JWT_KEY", "")
	cfg := config.Default()
	cfg.Auth.JWTKey = "abcdefghijklmnopqrstuvwxyz0123456789"

	var buf bytes.Buffer
	displayAllConfig(&buf, cfg)
	out := buf.String()

	if strings.Contains(out, cfg.Auth.JWTKey) {
		t.Error("signing key printed in clear")
	}
	for _, key := range configKeys {
		if !strings.Contains(out, key+":") {
			t.Errorf("output missing %s", key)
		}
	}
	if !strings.Contains(out, "config_file") {
		t.Errorf("missing key source:\n%s", out)
	}
}

func TestMigrateDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "projectmgr.db")

	var buf bytes.Buffer
	if err := migrateDatabase(&buf, path); err != nil {
		t.Fatalf("migrateDatabase() error = %v", err)
	}
	want := fmt.Sprintf("from version 0 to %d", state.LatestSchemaVersion())
	if !strings.Contains(buf.String(), want) {
		t.Errorf("first run output = %q", buf.String())
	}

	buf.Reset()
	if err := migrateDatabase(&buf, path); err != nil {
		t.Fatalf("second migrateDatabase() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Schema up to date") {
		t.Errorf("second run output = %q", buf.String())
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	if !strings.HasPrefix(buf.String(), "projectmgr version ") {
		t.Errorf("version output = %q", buf.String())
	}
}
