package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"budgetdash/internal/logger"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage schema migrations",
		Long: `Apply, roll back, and inspect schema migrations.

PostgreSQL uses the versioned SQL files under MIGRATIONS_PATH. SQLite is
auto-migrated from the models, so only "up" applies to it.`,
		Example: `  # Apply all pending migrations
  budgetctl migrate up

  # Roll back the last two migrations
  budgetctl migrate down 2

  # Show the applied version
  budgetctl migrate version`,
	}

	cmd.AddCommand(migrateUpCmd())
	cmd.AddCommand(migrateDownCmd())
	cmd.AddCommand(migrateVersionCmd())

	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := openManager()
			if err != nil {
				return err
			}
			defer closeManager(manager)

			if err := manager.RunMigrations(); err != nil {
				return err
			}
			logger.Get().Info("Migrations applied successfully")
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}

			manager, err := openManager()
			if err != nil {
				return err
			}
			defer closeManager(manager)

			if err := manager.RollbackMigrations(steps); err != nil {
				return err
			}
			logger.Get().Infof("Rolled back %d migration(s)", steps)
			return nil
		},
	}
}

func migrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the applied migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := openManager()
			if err != nil {
				return err
			}
			defer closeManager(manager)

			version, dirty, err := manager.MigrationVersion()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d, dirty: %v\n", version, dirty)
			return nil
		},
	}
}

// parseSteps reads the optional step count of "migrate down".
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid step count %q: %w", args[0], err)
	}
	if steps < 1 {
		return 0, fmt.Errorf("step count must be at least 1, got %d", steps)
	}
	return steps, nil
}
