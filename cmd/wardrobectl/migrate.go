package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/redmonkez12/wardrobe-api/internal/config"
	"github.com/redmonkez12/wardrobe-api/internal/database"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  runMigrateUp,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE:  runMigrateDown,
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	downCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := database.MigrateUp(cfg.Database.URL()); err != nil {
		return err
	}

	printSuccess("Migrations applied.")
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	yes, _ := cmd.Flags().GetBool("yes")

	if steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Roll back %d migration(s) on %s/%s?", steps, cfg.Database.Host, cfg.Database.DBName)).
					Description("Rolled back tables lose their data.").
					Affirmative("Roll back").
					Negative("Cancel").
					Value(&confirmed),
			),
		).WithTheme(huh.ThemeCatppuccin())

		if err := form.Run(); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := database.MigrateDown(cfg.Database.URL(), steps); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Rolled back %d migration(s).", steps))
	return nil
}
