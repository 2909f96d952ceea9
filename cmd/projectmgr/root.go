package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/nishant152030/Project-manager-2/internal/config"
)

// configPath is set by --config and overrides the XDG/project lookup.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "projectmgr",
	Short: "Project management API and task scheduler",
	Long: `projectmgr serves a small project management API: accounts, projects,
tasks, and a scheduler that orders tasks so every dependency comes first,
preferring earlier due dates and shorter estimates.

Configuration is read from ~/.config/projectmgr/config.yaml, a
.projectmgr.yaml in the current directory or a parent, and environment
variables (JWT_KEY, CONNECTION_STRING, CORS_ORIGINS, ...).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: XDG config plus .projectmgr.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig honours --config when given.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// configFileForWrite is where `config set` persists changes.
func configFileForWrite() string {
	if configPath != "" {
		return configPath
	}
	return config.GetUserConfigPath()
}
