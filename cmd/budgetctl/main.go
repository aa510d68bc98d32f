package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"budgetdash/internal/config"
	"budgetdash/internal/database"
	"budgetdash/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "budgetctl",
	Short: "Operator tooling for the budgetdash database",
	Long: `budgetctl manages the budgetdash database: it applies and rolls back
schema migrations and seeds the default categories.

Connection settings are read from the same environment (and .env file)
as the API server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openManager loads the configuration and connects to the database.
func openManager() (*database.Manager, error) {
	appConfig, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return nil, err
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return manager, nil
}

func closeManager(manager *database.Manager) {
	if err := manager.Close(); err != nil {
		logger.Get().Warnw("failed to close database", "error", err)
	}
}
