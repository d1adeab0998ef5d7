package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/resumeforge/tailor/internal/config"
	"github.com/resumeforge/tailor/internal/db"
	"github.com/resumeforge/tailor/internal/embedding"
	"github.com/resumeforge/tailor/internal/observability"
	"github.com/resumeforge/tailor/internal/pipeline"
)

var (
	generateProfileID string
	generateJDFile    string
	generateVerbose   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored résumé for a profile and job description",
	Long:  "Run the full ten-phase generation pipeline directly, without going through the REST API.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateProfileID, "profile-id", "", "UUID of the profile to tailor (required)")
	generateCmd.Flags().StringVar(&generateJDFile, "jd-file", "", "path to a file containing the raw job description text (required)")
	generateCmd.Flags().BoolVar(&generateVerbose, "verbose", false, "print phase-by-phase progress boxes")
	_ = generateCmd.MarkFlagRequired("profile-id")
	_ = generateCmd.MarkFlagRequired("jd-file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	profileID, err := uuid.Parse(generateProfileID)
	if err != nil {
		return fmt.Errorf("invalid --profile-id: %w", err)
	}

	jdBytes, err := os.ReadFile(generateJDFile)
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

	var backend embedding.Backend
	if pipelineCfg.LLMAPIKey != "" {
		backend, err = embedding.NewGeminiBackend(ctx, pipelineCfg.LLMAPIKey, pipelineCfg.EmbeddingModel)
		if err != nil {
			return fmt.Errorf("failed to create embedding backend: %w", err)
		}
	} else {
		backend = embedding.NewHashBackend()
	}

	generator := pipeline.NewGenerator(database, backend, pipelineCfg, nil)
	if generateVerbose {
		generator.Printer = observability.NewPrinter(os.Stdout)
	}

	summary, err := generator.RunGeneration(ctx, profileID, string(jdBytes))
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Printf("resume_id=%s version=%d pdf=%q docx=%q\n", summary.ResumeID, summary.Version, summary.PDFPath, summary.DOCXPath)
	return nil
}
