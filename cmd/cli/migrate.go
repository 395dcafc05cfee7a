package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/memberledger/internal/infrastructure/postgres"
)

type migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
}

var newMigrator = func(databaseURL, path string) migrator {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return postgres.NewMigrator(databaseURL, path, logger)
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&path, "path", envOr("MIGRATIONS_PATH", "internal/infrastructure/postgres/migrations"), "Migrations directory")

	run := func(action func(migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			if databaseURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			return action(newMigrator(databaseURL, path))
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(func(m migrator) error { return m.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  run(func(m migrator) error { return m.Down() }),
		},
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
	}
	versionCmd.RunE = run(func(m migrator) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(versionCmd.OutOrStdout(), "version: %d dirty: %v\n", version, dirty)
		return err
	})
	cmd.AddCommand(versionCmd)

	return cmd
}
