package main

import (
	"fmt"

	"conduit/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Long: `Create or upgrade the database schema for users, follows, articles,
article tags, favorites and comments.

Example:
  conduit migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer func() { _ = database.Close(db) }()
		return database.Migrate(db)
	},
}
