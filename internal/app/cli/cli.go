// Package cli defines the opsdash command tree.
package cli

import (
	"github.com/spf13/cobra"

	"opsdash/internal/app/server"
	"opsdash/internal/platform/config"
	"opsdash/internal/platform/db"
)

func New() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opsdash",
		Short: "Operations dashboard backend",
	}
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(config.Load())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			pool, err := db.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			return db.Migrate(cmd.Context(), pool, cfg.MigrationsDir)
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create default roles, menus and the admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			pool, err := db.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			return db.Seed(cmd.Context(), pool, cfg)
		},
	}
}
