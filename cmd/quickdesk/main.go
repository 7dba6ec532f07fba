package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/quickdesk/core/cmd/quickdesk/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quickdesk",
		Short: "QuickDesk widget backend",
		Long:  `QuickDesk serves the task and inbox widget suite: the REST API the embedded widgets poll for tasks, conversations, and inbox threads.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
