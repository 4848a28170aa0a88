package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wardrobectl",
		Short: "Operate the wardrobe API",
		Long:  "Admin tool for the wardrobe API: apply migrations and inspect the onboarding gate for a user.",
		// Errors are printed by printError
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newMigrateCmd(), newGateCmd(), newOnboardingCmd())

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
