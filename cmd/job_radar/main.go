// Package main provides the job-radar command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_radar",
	Short: "Vacancy aggregation and candidate matching",
	Long:  "job-radar ingests vacancies from RSS, HTML and CSV sources, deduplicates them, and scores them against candidate profiles with explainable matching.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
