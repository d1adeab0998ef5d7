// Package main provides the entry point for the résumé tailoring service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumeforge",
	Short: "Résumé tailoring service",
	Long:  "resumeforge generates role-specific résumés from a profile and a job description, either via REST API or directly from the CLI.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
