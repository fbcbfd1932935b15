package database

import (
	"fmt"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
)

// Migrate creates or updates the schema for every persisted model.
func (db *DB) Migrate() error {
	if err := db.AutoMigrate(&models.PlayerRecord{}); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_players_updated_at ON players(updated_at)",
		"CREATE INDEX IF NOT EXISTS idx_players_salary ON players(salary)",
	}
	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// DropTables removes every table Migrate creates.
func (db *DB) DropTables() error {
	if err := db.Migrator().DropTable(&models.PlayerRecord{}); err != nil {
		return fmt.Errorf("failed to drop table players: %w", err)
	}
	return nil
}
