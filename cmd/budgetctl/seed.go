package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetdash/internal/services"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default categories",
		Long: `Insert the default (system) categories. Categories that already exist
by name are left untouched, so the command can be run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := openManager()
			if err != nil {
				return err
			}
			defer closeManager(manager)

			created, err := services.NewCategoryService(manager.DB()).SeedDefaultCategories()
			if err != nil {
				return fmt.Errorf("failed to seed categories: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d default categor(ies) created\n", created)
			return nil
		},
	}
}
