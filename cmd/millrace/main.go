package main

import (
	"os"

	"github.com/spf13/cobra"

	"millrace/internal/interfaces/cli/migrate"
	"millrace/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "millrace",
		Short: "Millrace - transaction ingestion and feature pipeline",
		Long:  `Millrace ingests transaction CSV uploads, cleans and deduplicates them, maintains daily and customer aggregates, and derives point-in-time ML features.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
