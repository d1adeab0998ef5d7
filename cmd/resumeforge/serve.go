package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resumeforge/tailor/internal/config"
	"github.com/resumeforge/tailor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing the jd/analyze and resumes/generate endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	pipelineCfg, err := config.NewPipelineConfig()
	if err != nil {
		return fmt.Errorf("failed to load pipeline config: %w", err)
	}
	if pipelineCfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	srv, err := server.New(cmd.Context(), server.Config{
		Port:           servePort,
		DatabaseURL:    pipelineCfg.DatabaseURL,
		PipelineConfig: pipelineCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
