package selection

import (
	"context"
	"strings"

	"github.com/resumeforge/tailor/internal/embedding"
	"github.com/resumeforge/tailor/internal/types"
)

// semanticProbeCap bounds the worst-case embedding calls spent verifying a
// must-have skill's confidence (spec.md §4.4 step 5).
const semanticProbeCap = 20
const semanticConfidenceThreshold = 0.60

// selectSkills runs the two-pass skill selection: pass A includes profile
// skills that (case-insensitively) contain or are contained by any JD
// must-have or nice-to-have skill; pass B fills the remainder in profile
// order up to maxSkills. Both passes preserve profile order and enforce
// case-insensitive uniqueness.
func selectSkills(skills []types.Skill, jd types.JDData, maxSkills int) []string {
	jdSkills := make([]string, 0, len(jd.MustHaveSkills)+len(jd.NiceToHaveSkills))
	jdSkills = append(jdSkills, jd.MustHaveSkills...)
	jdSkills = append(jdSkills, jd.NiceToHaveSkills...)

	seen := make(map[string]bool)
	var selected []string

	addIfNew := func(name string) bool {
		key := strings.ToLower(name)
		if seen[key] {
			return false
		}
		seen[key] = true
		selected = append(selected, name)
		return true
	}

	// Pass A: relevance match.
	for _, s := range skills {
		if matchesAnyJDSkill(s.Name, jdSkills) {
			if len(selected) >= maxSkills {
				break
			}
			addIfNew(s.Name)
		}
	}

	// Pass B: fill remainder in profile order.
	for _, s := range skills {
		if len(selected) >= maxSkills {
			break
		}
		addIfNew(s.Name)
	}

	if maxSkills >= 0 && len(selected) > maxSkills {
		selected = selected[:maxSkills]
	}
	return selected
}

func matchesAnyJDSkill(skillName string, jdSkills []string) bool {
	lower := strings.ToLower(skillName)
	for _, jdSkill := range jdSkills {
		jdLower := strings.ToLower(jdSkill)
		if jdLower == "" {
			continue
		}
		if strings.Contains(lower, jdLower) || strings.Contains(jdLower, lower) {
			return true
		}
	}
	return false
}

// gradeSkillConfidence computes, for every must-have JD skill, its
// confidence grade per spec.md §4.4 step 5:
//  1. strong: a profile skill matches case-insensitively, or either
//     string contains the other.
//  2. inferred: the skill appears as a substring of any selected bullet.
//  3. inferred: semantic similarity between embed(skill) and one of the
//     first semanticProbeCap bullet texts exceeds the threshold.
//  4. weak otherwise.
//
// A failed embedding call downgrades the verdict toward weak, never up.
func gradeSkillConfidence(ctx context.Context, mustHaveSkills []string, profileSkills []types.Skill, bullets []types.ScoredBullet, bulletVectors [][]float64, backend embedding.Backend) map[string]types.ConfidenceGrade {
	confidence := make(map[string]types.ConfidenceGrade, len(mustHaveSkills))

	probeBullets := bullets
	if len(probeBullets) > semanticProbeCap {
		probeBullets = probeBullets[:semanticProbeCap]
	}
	probeVectors := bulletVectors
	if len(probeVectors) > semanticProbeCap {
		probeVectors = probeVectors[:semanticProbeCap]
	}

	for _, skill := range mustHaveSkills {
		confidence[skill] = gradeOneSkill(ctx, skill, profileSkills, probeBullets, probeVectors, backend)
	}
	return confidence
}

func gradeOneSkill(ctx context.Context, skill string, profileSkills []types.Skill, probeBullets []types.ScoredBullet, probeVectors [][]float64, backend embedding.Backend) types.ConfidenceGrade {
	lowerSkill := strings.ToLower(skill)

	for _, ps := range profileSkills {
		lowerPS := strings.ToLower(ps.Name)
		if lowerPS == lowerSkill || strings.Contains(lowerPS, lowerSkill) || strings.Contains(lowerSkill, lowerPS) {
			return types.ConfidenceStrong
		}
	}

	for _, b := range probeBullets {
		if strings.Contains(strings.ToLower(b.EffectiveText()), lowerSkill) {
			return types.ConfidenceInferred
		}
	}

	if backend == nil {
		return types.ConfidenceWeak
	}

	skillVec, err := backend.Embed(ctx, skill)
	if err != nil {
		return types.ConfidenceWeak
	}
	for _, vec := range probeVectors {
		if len(vec) == 0 {
			continue
		}
		if embedding.Cosine(skillVec, vec) > semanticConfidenceThreshold {
			return types.ConfidenceInferred
		}
	}

	return types.ConfidenceWeak
}
