// Package selection implements the Relevance Selector (C4): it turns a
// profile snapshot and JD context into a ResumeDraft by scoring and
// truncating experience/project sections, selecting skills, and grading
// must-have-skill confidence. The selector is total: it produces a valid
// draft for any profile, including an empty one.
package selection

import (
	"context"

	"github.com/resumeforge/tailor/internal/embedding"
	"github.com/resumeforge/tailor/internal/types"
)

// Limits bundles the cardinality caps read from configuration.
type Limits struct {
	MaxExperienceSections int
	MaxProjectSections    int
	MaxBulletsPerSection  int
	MaxSkills             int
}

// Select runs the full C4 algorithm and returns a ResumeDraft. backend may
// be nil; if so, must-have-skill confidence never escalates past the
// substring check (the semantic probe step is skipped).
func Select(ctx context.Context, profile types.Profile, jd types.JDData, jdVector []float64, backend embedding.Backend, limits Limits) *types.ResumeDraft {
	expSections := scoreExperienceSections(profile.Experience, jd, jdVector, limits.MaxExperienceSections, limits.MaxBulletsPerSection)
	projSections := scoreProjectSections(profile.Projects, jd, jdVector, limits.MaxProjectSections, limits.MaxBulletsPerSection)

	selectedSkills := selectSkills(profile.Skills, jd, limits.MaxSkills)

	flatBullets, flatVectors := flattenSelectedBullets(profile, expSections, projSections)
	confidence := gradeSkillConfidence(ctx, jd.MustHaveSkills, profile.Skills, flatBullets, flatVectors, backend)

	return &types.ResumeDraft{
		JDData:             jd,
		JDVector:           jdVector,
		ExperienceSections: expSections,
		ProjectSections:    projSections,
		SelectedSkills:     selectedSkills,
		SkillConfidence:    confidence,
		KeywordCoverage:    map[string]bool{},

		PersonalInfo:     profile.PersonalInfo,
		Education:        profile.Education,
		Certifications:   profile.Certifications,
		Achievements:     profile.Achievements,
		ExternalProfiles: profile.ExternalProfiles,
	}
}

// flattenSelectedBullets walks the already-truncated experience and project
// sections in order and pairs each bullet with its original embedding
// vector (looked up by ID from the source profile), for the confidence
// semantic probe in materialize.go.
func flattenSelectedBullets(profile types.Profile, expSections, projSections []types.ScoredSection) ([]types.ScoredBullet, [][]float64) {
	vectorByID := make(map[string][]float64)
	for _, exp := range profile.Experience {
		for _, b := range exp.Bullets {
			vectorByID[b.ID] = b.Vector
		}
	}
	for _, proj := range profile.Projects {
		for _, b := range proj.Bullets {
			vectorByID[b.ID] = b.Vector
		}
	}

	var bullets []types.ScoredBullet
	var vectors [][]float64
	for _, s := range expSections {
		for _, b := range s.Bullets {
			bullets = append(bullets, b)
			vectors = append(vectors, vectorByID[b.ID])
		}
	}
	for _, s := range projSections {
		for _, b := range s.Bullets {
			bullets = append(bullets, b)
			vectors = append(vectors, vectorByID[b.ID])
		}
	}
	return bullets, vectors
}
