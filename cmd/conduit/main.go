// Command conduit runs the Conduit blogging API and its maintenance tasks.
package main

import (
	"os"

	"conduit/internal/config"
	"conduit/internal/observability"

	"github.com/spf13/cobra"
)

// @title Conduit API
// @version 1.0
// @description Blogging platform API with users, profiles, articles, favorites, comments and tags.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type "Token" followed by a space and the JWT.

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "conduit",
	Short: "Conduit blogging API",
	Long: `Conduit serves the blogging REST API and runs its maintenance tasks.

Configuration comes from the environment, an optional .env file and an optional config.yml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		observability.InitLogger(cfg.Env)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
