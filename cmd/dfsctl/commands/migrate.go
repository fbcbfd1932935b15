package commands

import (
	"fmt"

	"github.com/jstittsworth/contrarian-dfs/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or drop the players table",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create the players table and its indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB) error {
			if err := db.Migrate(); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed successfully")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Drop the players table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB) error {
			if err := db.DropTables(); err != nil {
				return fmt.Errorf("failed to drop tables: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tables dropped successfully")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func withDB(fn func(db *database.DB) error) error {
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
