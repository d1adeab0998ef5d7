// Package jdinterp implements the JD Interpreter (C1): it turns raw job
// description text into structured JDData, via an assisted (LLM) backend
// with a deterministic rule-based fallback.
package jdinterp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/resumeforge/tailor/internal/llm"
	"github.com/resumeforge/tailor/internal/prompts"
	"github.com/resumeforge/tailor/internal/schemas"
	"github.com/resumeforge/tailor/internal/types"
)

// MinRawTextLength is the minimum accepted length for raw JD text.
const MinRawTextLength = 20

// technologyLexicon is the fixed set of technologies the rule-based
// fallback matches case-insensitively against the JD text. Grounded on
// the original Python jd_analyzer.py rule-based path, expanded.
var technologyLexicon = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Go", "Rust", "C++", "C#",
	"React", "Angular", "Vue", "Node.js", "SQL", "PostgreSQL", "MySQL",
	"MongoDB", "Redis", "AWS", "GCP", "Azure", "Docker", "Kubernetes", "Git",
	"REST", "GraphQL", "FastAPI", "Django", "Flask", "Spring", "TensorFlow",
	"PyTorch", "Scikit-learn", "Pandas", "Machine Learning", "Deep Learning",
	"NLP", "CI/CD", "Agile", "Scrum", "Terraform", "Kafka", "Spark",
}

var seniorTerms = []string{"senior", "lead", "principal", "staff"}
var entryTerms = []string{"junior", "entry", "intern", "graduate", "fresher"}

// fenceRE strips a leading/trailing markdown code fence, with or without a
// language tag, from an LLM response.
var fenceRE = regexp.MustCompile("(?s)^```(?:[\\w-]+)?\\s*(.*?)\\s*```$")

// Interpret parses raw JD text into JDData. apiKey == "" forces the
// rule-based path; a non-empty key attempts the assisted backend first and
// silently downgrades to rules on any failure — this is never fatal.
func Interpret(ctx context.Context, rawText string, apiKey string, logger *slog.Logger) (*types.JDData, error) {
	if len(strings.TrimSpace(rawText)) < MinRawTextLength {
		return nil, &ValidationError{Message: "raw JD text must be at least 20 characters"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	cleaned := cleanJDText(rawText)

	var data *types.JDData
	if apiKey != "" {
		assisted, err := interpretAssisted(ctx, cleaned, apiKey)
		if err != nil {
			logger.Warn("jd interpreter: assisted backend failed, falling back to rules", "error", err)
		} else {
			data = assisted
		}
	}
	if data == nil {
		data = interpretRules(cleaned)
	}

	hash := sha256.Sum256([]byte(rawText))
	data.RawTextHash = hex.EncodeToString(hash[:])
	return data, nil
}

func interpretAssisted(ctx context.Context, rawText string, apiKey string) (*types.JDData, error) {
	config := llm.DefaultConfig()
	client, err := llm.NewClient(ctx, config, apiKey)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	prompt := buildPrompt(rawText)
	responseText, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content", Cause: err}
	}

	cleaned := stripFence(responseText)

	if err := schemas.ValidateJSONContentAgainstFile("jd_data.schema.json", cleaned); err != nil {
		return nil, &APICallError{Message: "assisted response failed schema validation", Cause: err}
	}

	var raw struct {
		RoleTitle        string   `json:"role_title"`
		ExperienceLevel  string   `json:"experience_level"`
		MustHaveSkills   []string `json:"must_have_skills"`
		NiceToHaveSkills []string `json:"nice_to_have_skills"`
		Keywords         []string `json:"keywords"`
		RoleCategory     string   `json:"role_category"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &APICallError{Message: "failed to parse JSON response", Cause: err}
	}

	level := types.ExperienceLevel(raw.ExperienceLevel)
	switch level {
	case types.LevelEntry, types.LevelMid, types.LevelSenior:
	default:
		level = types.LevelMid
	}

	return &types.JDData{
		RoleTitle:        raw.RoleTitle,
		ExperienceLevel:  level,
		MustHaveSkills:   raw.MustHaveSkills,
		NiceToHaveSkills: raw.NiceToHaveSkills,
		Keywords:         raw.Keywords,
		RoleCategory:     raw.RoleCategory,
	}, nil
}

func buildPrompt(rawText string) string {
	template := prompts.MustGet("jdinterp.json", "analyze-jd")
	return prompts.Format(template, map[string]string{"JobText": rawText})
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if m := fenceRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// interpretRules is the deterministic fallback, ported exactly from
// spec.md §4.1(b-e) / original_source/app/services/jd_analyzer.py's
// analyze_jd_rules.
func interpretRules(rawText string) *types.JDData {
	textLower := strings.ToLower(rawText)

	seen := make(map[string]bool)
	var keywords []string
	for _, term := range technologyLexicon {
		if strings.Contains(textLower, strings.ToLower(term)) {
			key := strings.ToLower(term)
			if !seen[key] {
				seen[key] = true
				keywords = append(keywords, term)
			}
		}
	}
	sort.Strings(keywords)

	level := types.LevelMid
	if containsAny(textLower, seniorTerms) {
		level = types.LevelSenior
	} else if containsAny(textLower, entryTerms) {
		level = types.LevelEntry
	}

	roleTitle := "Unknown Role"
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			roleTitle = line
			break
		}
	}
	if len(roleTitle) > 100 {
		roleTitle = roleTitle[:100]
	}

	mustHave := keywords
	if len(mustHave) > 10 {
		mustHave = mustHave[:10]
	}

	return &types.JDData{
		RoleTitle:        roleTitle,
		ExperienceLevel:  level,
		MustHaveSkills:   mustHave,
		NiceToHaveSkills: []string{},
		Keywords:         keywords,
		RoleCategory:     "General",
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
