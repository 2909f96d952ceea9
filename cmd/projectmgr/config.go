package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nishant152030/Project-manager-2/internal/config"
	"github.com/nishant152030/Project-manager-2/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify projectmgr configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/projectmgr/config.yaml
Project-specific overrides can be placed in .projectmgr.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		out := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			displayAllConfig(out, cfg)
			return nil
		case 1:
			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
			return nil
		default:
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			path := configFileForWrite()
			if err := config.SaveToPath(cfg, path); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(out, "Set %s in %s\n", strings.ToLower(args[0]), path)
			return nil
		}
	},
}

// configKeys lists every key in display order.
var configKeys = []string{
	"server.addr",
	"server.shutdown_timeout",
	"database.path",
	"auth.jwt_key",
	"auth.issuer",
	"auth.audience",
	"auth.token_ttl",
	"auth.login_rate",
	"auth.login_burst",
	"cors.origins",
	"log.level",
	"log.file",
}

// displayAllConfig prints all configuration values.
func displayAllConfig(w io.Writer, cfg *config.Config) {
	keyColor := color.New(color.FgCyan)
	for _, key := range configKeys {
		value, _ := getConfigValue(cfg, key)
		fmt.Fprintf(w, "%s: %s\n", keyColor.Sprint(key), value)
	}
	fmt.Fprintf(w, "%s: %s\n", keyColor.Sprint("auth.jwt_key source"), config.GetJWTKeySource(cfg))
}

// getConfigValue retrieves a configuration value by dot-notation key.
// The signing key is always masked.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "server.addr":
		return cfg.Server.Addr, nil
	case "server.shutdown_timeout":
		return cfg.Server.ShutdownTimeout.String(), nil
	case "database.path":
		return cfg.Database.Path, nil
	case "auth.jwt_key":
		if cfg.Auth.JWTKey == "" {
			return "(not set)", nil
		}
		return config.MaskSecret(cfg.Auth.JWTKey), nil
	case "auth.issuer":
		return cfg.Auth.Issuer, nil
	case "auth.audience":
		return cfg.Auth.Audience, nil
	case "auth.token_ttl":
		return cfg.Auth.TokenTTL.String(), nil
	case "auth.login_rate":
		return strconv.FormatFloat(cfg.Auth.LoginRate, 'f', -1, 64), nil
	case "auth.login_burst":
		return strconv.Itoa(cfg.Auth.LoginBurst), nil
	case "cors.origins":
		return strings.Join(cfg.CORS.Origins, ","), nil
	case "log.level":
		return cfg.Log.Level, nil
	case "log.file":
		return cfg.Log.File, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "server.addr":
		cfg.Server.Addr = value
	case "server.shutdown_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for server.shutdown_timeout: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	case "database.path":
		cfg.Database.Path = value
	case "auth.jwt_key":
		// ${VAR} references are resolved at load time.
		if !strings.HasPrefix(value, "${") {
			if err := config.ValidateJWTKey(value); err != nil {
				return err
			}
		}
		cfg.Auth.JWTKey = value
	case "auth.issuer":
		cfg.Auth.Issuer = value
	case "auth.audience":
		cfg.Auth.Audience = value
	case "auth.token_ttl":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for auth.token_ttl: %w", err)
		}
		cfg.Auth.TokenTTL = d
	case "auth.login_rate":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid rate for auth.login_rate: %q", value)
		}
		cfg.Auth.LoginRate = f
	case "auth.login_burst":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid value for auth.login_burst: %q", value)
		}
		cfg.Auth.LoginBurst = n
	case "cors.origins":
		var origins []string
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.Origins = origins
	case "log.level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
