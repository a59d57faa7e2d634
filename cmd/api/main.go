package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarav18302/CS203-Lab-01/cmd/api/commands"
)

// @title Course Portal API
// @version 1.0
// @description University course catalog portal

// @host localhost:8080
// @BasePath /api/v1

func main() {
	rootCmd := &cobra.Command{
		Use:   "courseportal",
		Short: "Course Portal Server",
		Long:  `Course Portal is a web application for browsing and submitting university course listings, backed by a JSON file catalog with optional Postgres storage and OpenTelemetry instrumentation.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
