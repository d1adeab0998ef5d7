package config

import (
	"fmt"
	"os"
	"strconv"
)

// PipelineConfig holds the environment-sourced settings for the generation
// pipeline (C1-C8), per spec.md §6. Every field except DatabaseURL and
// LLMAPIKey has a default. DatabaseURL has none: it stays empty when
// DATABASE_URL is unset, and the serve, generate and analyze-jd commands
// refuse to start without it. An empty LLMAPIKey selects the rule-based and
// fallback paths.
type PipelineConfig struct {
	DatabaseURL string
	LLMAPIKey   string
	LLMModel    string

	EmbeddingModel string
	EmbeddingDim   int

	MaxExperienceSections int
	MaxProjectSections    int
	MaxBulletsPerSection  int
	MaxSkills             int

	OutputDir string
}

// NewPipelineConfig reads PipelineConfig from the environment, applying
// defaults for anything unset.
func NewPipelineConfig() (*PipelineConfig, error) {
	cfg := &PipelineConfig{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LLMAPIKey:      os.Getenv("LLM_API_KEY"),
		LLMModel:       envOrDefault("LLM_MODEL", "gemini-2.0-flash"),
		EmbeddingModel: envOrDefault("EMBEDDING_MODEL", "all-MiniLM-L6-v2"),
		OutputDir:      envOrDefault("OUTPUT_DIR", "./output"),
	}

	var err error
	if cfg.EmbeddingDim, err = envIntOrDefault("EMBEDDING_DIM", 384); err != nil {
		return nil, err
	}
	if cfg.MaxExperienceSections, err = envIntOrDefault("MAX_EXPERIENCE_SECTIONS", 3); err != nil {
		return nil, err
	}
	if cfg.MaxProjectSections, err = envIntOrDefault("MAX_PROJECT_SECTIONS", 3); err != nil {
		return nil, err
	}
	if cfg.MaxBulletsPerSection, err = envIntOrDefault("MAX_BULLETS_PER_SECTION", 4); err != nil {
		return nil, err
	}
	if cfg.MaxSkills, err = envIntOrDefault("MAX_SKILLS", 12); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *PipelineConfig) normalize() error {
	if c.EmbeddingDim < 1 {
		return fmt.Errorf("EMBEDDING_DIM must be positive, got: %d", c.EmbeddingDim)
	}
	if c.MaxExperienceSections < 0 || c.MaxProjectSections < 0 || c.MaxBulletsPerSection < 0 || c.MaxSkills < 0 {
		return fmt.Errorf("config error: MAX_* limits must be non-negative")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
