package main

import (
	"fmt"
	"time"

	"conduit/internal/cache"
	"conduit/internal/database"
	"conduit/internal/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data",
	Long: `Load demo data through the service layer.

With --file the YAML fixtures are applied; otherwise random users and articles
are generated.

Example:
  conduit seed --users 20 --articles 100
  conduit seed --file fixtures.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		users, _ := cmd.Flags().GetInt("users")
		articles, _ := cmd.Flags().GetInt("articles")
		file, _ := cmd.Flags().GetString("file")
		seedValue, _ := cmd.Flags().GetInt64("seed")

		var (
			fx  *seed.Fixtures
			err error
		)
		if file != "" {
			fx, err = seed.LoadFixtures(file)
			if err != nil {
				return err
			}
		} else {
			if seedValue == 0 {
				seedValue = time.Now().UnixNano()
			}
			fx = seed.Generate(seedValue, users, articles)
		}

		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer func() { _ = database.Close(db) }()
		if err := database.Migrate(db); err != nil {
			return err
		}

		// Cached tags are invalidated when redis is reachable.
		rdb, _ := cache.Connect(ctx, cfg.RedisURL)
		if rdb != nil {
			defer func() { _ = rdb.Close() }()
		}

		sum, err := seed.New(db, rdb, cfg.JWTSecret).Apply(ctx, fx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d articles, %d comments, %d follows, %d favorites\n",
			sum.Users, sum.Articles, sum.Comments, sum.Follows, sum.Favorites)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("users", 10, "number of generated users")
	seedCmd.Flags().Int("articles", 40, "number of generated articles")
	seedCmd.Flags().String("file", "", "YAML fixtures file")
	seedCmd.Flags().Int64("seed", 0, "random seed for generated data (0 picks one)")
}
