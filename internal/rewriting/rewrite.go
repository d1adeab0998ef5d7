// Package rewriting implements the Bullet Rewriter (C5): assisted (LLM)
// rewording of selected bullets with a deterministic, always-available
// fallback. The operation is idempotent and total — every bullet always
// ends up with a non-empty RewrittenText whenever OriginalText was
// non-empty.
package rewriting

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/resumeforge/tailor/internal/llm"
	"github.com/resumeforge/tailor/internal/prompts"
	"github.com/resumeforge/tailor/internal/schemas"
	"github.com/resumeforge/tailor/internal/types"
)

// actionVerbs is the fixed cyclic list used by the deterministic fallback,
// indexed by i mod len(actionVerbs).
var actionVerbs = []string{
	"Developed", "Implemented", "Designed", "Engineered", "Built",
	"Optimized", "Led", "Managed", "Created", "Deployed",
}

const maxPromptKeywords = 10

var fenceRE = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// RewriteBullets rewrites every bullet's text in place (returning a new
// slice) given the job title and JD keywords for context. apiKey == ""
// forces the deterministic fallback; a non-empty key attempts the assisted
// backend first and silently falls back on any rejection — rewrite
// rejection is never fatal (spec.md §7).
func RewriteBullets(ctx context.Context, bullets []types.ScoredBullet, jobTitle string, keywords []string, apiKey string, logger *slog.Logger) []types.ScoredBullet {
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]types.ScoredBullet, len(bullets))
	copy(out, bullets)
	if len(out) == 0 {
		return out
	}

	var rewritten []string
	if apiKey != "" {
		texts := make([]string, len(out))
		for i, b := range out {
			texts[i] = b.OriginalText
		}
		assisted, err := rewriteAssisted(ctx, texts, jobTitle, keywords, apiKey)
		if err != nil {
			logger.Warn("bullet rewriter: assisted backend rejected, falling back", "error", err)
		} else if len(assisted) != len(out) {
			logger.Warn("bullet rewriter: assisted response length mismatch, falling back", "got", len(assisted), "want", len(out))
		} else {
			rewritten = assisted
		}
	}
	if rewritten == nil {
		rewritten = rewriteFallback(out)
	}

	for i := range out {
		text := strings.TrimSpace(rewritten[i])
		if text == "" {
			text = out[i].OriginalText
		}
		out[i].RewrittenText = text
	}
	return out
}

func rewriteAssisted(ctx context.Context, bulletTexts []string, jobTitle string, keywords []string, apiKey string) ([]string, error) {
	config := llm.DefaultConfig()
	client, err := llm.NewClient(ctx, config, apiKey)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	prompt := buildRewritePrompt(bulletTexts, jobTitle, keywords)
	responseText, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content", Cause: err}
	}

	cleaned := stripFence(responseText)

	if err := schemas.ValidateJSONContentAgainstFile("rewrite_bullets.schema.json", cleaned); err != nil {
		return nil, &APICallError{Message: "assisted response failed schema validation", Cause: err}
	}

	var rewritten []string
	if err := json.Unmarshal([]byte(cleaned), &rewritten); err != nil {
		return nil, &APICallError{Message: "failed to parse JSON response", Cause: err}
	}
	return rewritten, nil
}

func buildRewritePrompt(bulletTexts []string, jobTitle string, keywords []string) string {
	if len(keywords) > maxPromptKeywords {
		keywords = keywords[:maxPromptKeywords]
	}

	bulletsJSON, _ := json.Marshal(bulletTexts)

	template := prompts.MustGet("rewrite.json", "rewrite-bullets")
	return prompts.Format(template, map[string]string{
		"JobTitle": jobTitle,
		"Keywords": strings.Join(keywords, ", "),
		"Bullets":  string(bulletsJSON),
	})
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if m := fenceRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// rewriteFallback applies the deterministic action-verb-prepend rule to
// every bullet, per spec.md §4.5.
func rewriteFallback(bullets []types.ScoredBullet) []string {
	out := make([]string, len(bullets))
	for i, b := range bullets {
		out[i] = fallbackOne(b.OriginalText, i)
	}
	return out
}

func fallbackOne(text string, index int) string {
	trimmed := strings.TrimSpace(text)
	result := trimmed

	if needsActionVerb(trimmed) {
		verb := actionVerbs[index%len(actionVerbs)]
		result = verb + " " + lowerFirst(trimmed)
	}

	return strings.TrimSuffix(result, ".")
}

func needsActionVerb(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	first := words[0]
	r := []rune(first)
	if unicode.IsLower(r[0]) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(first), "ing")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
