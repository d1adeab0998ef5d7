package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resumeforge/tailor/internal/config"
	"github.com/resumeforge/tailor/internal/db"
	"github.com/resumeforge/tailor/internal/jdinterp"
)

var analyzeJDFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze-jd",
	Short: "Interpret a raw job description and persist the result",
	Long:  "Run the jd interpretation phase directly, without generating a résumé.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd-file", "", "path to a file containing the raw job description text (required)")
	_ = analyzeCmd.MarkFlagRequired("jd-file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	jdBytes, err := os.ReadFile(analyzeJDFile)
	if err != nil {
		return fmt.Errorf("failed to read --jd-file: %w", err)
	}

	pipelineCfg, err := config.NewPipelineConfig()
	if err != nil {
		return fmt.Errorf("failed to load pipeline config: %w", err)
	}
	if pipelineCfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	database, err := db.Connect(ctx, pipelineCfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	jd, err := jdinterp.Interpret(ctx, string(jdBytes), pipelineCfg.LLMAPIKey, nil)
	if err != nil {
		return fmt.Errorf("failed to interpret job description: %w", err)
	}

	id, createdAt, err := database.SaveJDAnalysis(ctx, *jd, string(jdBytes))
	if err != nil {
		return fmt.Errorf("failed to save jd analysis: %w", err)
	}

	fmt.Printf("jd_analysis_id=%s role=%q created_at=%s\n", id, jd.RoleTitle, createdAt.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}
