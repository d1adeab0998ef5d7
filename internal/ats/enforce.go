// Package ats implements the ATS Enforcer (C6): an idempotent finalization
// pass over a ResumeDraft that re-applies cardinality caps defensively and
// populates keyword coverage.
package ats

import (
	"strings"

	"github.com/resumeforge/tailor/internal/config"
	"github.com/resumeforge/tailor/internal/types"
)

// Enforce re-applies section/bullet/skill truncations using the configured
// caps (defensive — upstream selection already respects them) and rebuilds
// draft.KeywordCoverage. Running Enforce twice on the same draft yields an
// equal draft (the idempotence law in spec.md §8).
func Enforce(draft *types.ResumeDraft, cfg *config.PipelineConfig) {
	draft.ExperienceSections = truncateSections(draft.ExperienceSections, cfg.MaxExperienceSections, cfg.MaxBulletsPerSection)
	draft.ProjectSections = truncateSections(draft.ProjectSections, cfg.MaxProjectSections, cfg.MaxBulletsPerSection)
	draft.SelectedSkills = truncateSkills(draft.SelectedSkills, cfg.MaxSkills)

	draft.KeywordCoverage = keywordCoverage(draft)
}

func truncateSections(sections []types.ScoredSection, maxSections, maxBullets int) []types.ScoredSection {
	out := make([]types.ScoredSection, 0, len(sections))
	for i, s := range sections {
		if maxSections >= 0 && i >= maxSections {
			break
		}
		if maxBullets >= 0 && len(s.Bullets) > maxBullets {
			s.Bullets = append([]types.ScoredBullet(nil), s.Bullets[:maxBullets]...)
		}
		out = append(out, s)
	}
	return out
}

func truncateSkills(skills []string, maxSkills int) []string {
	if maxSkills < 0 || len(skills) <= maxSkills {
		return skills
	}
	return append([]string(nil), skills[:maxSkills]...)
}

// keywordCoverage builds the lowercased, space-joined blob of every
// selected section title, every bullet's effective text, and every
// selected skill, then tests each JD keyword as a substring of that blob.
func keywordCoverage(draft *types.ResumeDraft) map[string]bool {
	var sb strings.Builder
	for _, s := range draft.ExperienceSections {
		writeSectionBlob(&sb, s)
	}
	for _, s := range draft.ProjectSections {
		writeSectionBlob(&sb, s)
	}
	for _, skill := range draft.SelectedSkills {
		sb.WriteString(" ")
		sb.WriteString(skill)
	}

	blob := strings.ToLower(sb.String())

	coverage := make(map[string]bool, len(draft.JDData.Keywords))
	for _, kw := range draft.JDData.Keywords {
		coverage[kw] = strings.Contains(blob, strings.ToLower(kw))
	}
	return coverage
}

func writeSectionBlob(sb *strings.Builder, s types.ScoredSection) {
	sb.WriteString(" ")
	sb.WriteString(s.Title)
	for _, b := range s.Bullets {
		sb.WriteString(" ")
		sb.WriteString(b.EffectiveText())
	}
}
