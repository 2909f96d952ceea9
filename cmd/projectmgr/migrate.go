package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nishant152030/Project-manager-2/internal/state"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Long: `Open the configured database (database.path or CONNECTION_STRING) and
apply any pending schema migrations. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return migrateDatabase(cmd.OutOrStdout(), cfg.Database.Path)
	},
}

func migrateDatabase(w io.Writer, path string) error {
	db, err := state.Open(path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	before, err := db.SchemaVersion()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if err := db.Migrate(); err != nil {
		printStatus(w, "✗", "Migration failed", color.FgRed)
		return fmt.Errorf("migrate database: %w", err)
	}

	after, err := db.SchemaVersion()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if latest := state.LatestSchemaVersion(); after != latest {
		printStatus(w, "✗", fmt.Sprintf("Schema at version %d, expected %d", after, latest), color.FgRed)
		return fmt.Errorf("schema version %d is not the latest (%d)", after, latest)
	}

	if after == before {
		printStatus(w, "✓", fmt.Sprintf("Schema up to date (version %d) at %s", after, db.Path()), color.FgGreen)
		return nil
	}
	printStatus(w, "✓", fmt.Sprintf("Migrated %s from version %d to %d", db.Path(), before, after), color.FgGreen)
	return nil
}

// printStatus prints a status line with color
func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}
