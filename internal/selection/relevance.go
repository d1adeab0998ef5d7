package selection

import (
	"fmt"
	"sort"

	"github.com/resumeforge/tailor/internal/scoring"
	"github.com/resumeforge/tailor/internal/types"
)

// scoreExperienceSections scores and truncates every Experience into a
// ScoredSection: section text is "{role} at {company}", vector is the
// stored SectionVector. Bullets are scored, sorted descending, and
// truncated to maxBullets. Sections are then sorted descending and
// truncated to maxSections.
func scoreExperienceSections(experience []types.Experience, jd types.JDData, jdVec []float64, maxSections, maxBullets int) []types.ScoredSection {
	sections := make([]types.ScoredSection, 0, len(experience))
	for _, exp := range experience {
		text := fmt.Sprintf("%s at %s", exp.Role, exp.Company)
		sc := scoring.ScoreSection(text, exp.SectionVector, jdVec, jd, types.SectionExperience, exp.EndDate)

		bullets := scoreBullets(exp.Bullets, jd, jdVec, types.SectionExperience, exp.EndDate, maxBullets)

		sections = append(sections, types.ScoredSection{
			ID:          exp.ID,
			Title:       exp.Role,
			Subtitle:    fmt.Sprintf("%s | %s – %s", exp.Company, exp.StartDate, orPresent(exp.EndDate)),
			SectionType: types.SectionExperience,
			Score:       sc.Combine(),
			Bullets:     bullets,
		})
	}

	sortSectionsDescending(sections)
	if maxSections >= 0 && len(sections) > maxSections {
		sections = sections[:maxSections]
	}
	return sections
}

// scoreProjectSections mirrors scoreExperienceSections for Projects: text
// is "{title}: {description}", no section vector (constant semantic
// fallback), no recency decay (end date is always empty), subtitle is the
// tech stack.
func scoreProjectSections(projects []types.Project, jd types.JDData, jdVec []float64, maxSections, maxBullets int) []types.ScoredSection {
	sections := make([]types.ScoredSection, 0, len(projects))
	for _, proj := range projects {
		text := fmt.Sprintf("%s: %s", proj.Title, proj.Description)
		sc := scoring.ScoreSection(text, nil, jdVec, jd, types.SectionProject, "")

		bullets := scoreProjectBullets(proj.Bullets, jd, jdVec, maxBullets)

		sections = append(sections, types.ScoredSection{
			ID:          proj.ID,
			Title:       proj.Title,
			Subtitle:    techStackSubtitle(proj.TechStack),
			SectionType: types.SectionProject,
			Score:       sc.Combine(),
			Bullets:     bullets,
		})
	}

	sortSectionsDescending(sections)
	if maxSections >= 0 && len(sections) > maxSections {
		sections = sections[:maxSections]
	}
	return sections
}

func scoreBullets(bullets []types.ExperienceBullet, jd types.JDData, jdVec []float64, sectionType types.SectionType, endDate string, maxBullets int) []types.ScoredBullet {
	scored := make([]types.ScoredBullet, 0, len(bullets))
	for _, b := range bullets {
		sc := scoring.ScoreBullet(b.Text, b.Vector, jdVec, jd, sectionType, endDate)
		scored = append(scored, types.ScoredBullet{
			ID:           b.ID,
			OriginalText: b.Text,
			Score:        sc.Combine(),
		})
	}
	sortBulletsDescending(scored)
	if maxBullets >= 0 && len(scored) > maxBullets {
		scored = scored[:maxBullets]
	}
	return scored
}

func scoreProjectBullets(bullets []types.ProjectBullet, jd types.JDData, jdVec []float64, maxBullets int) []types.ScoredBullet {
	scored := make([]types.ScoredBullet, 0, len(bullets))
	for _, b := range bullets {
		sc := scoring.ScoreBullet(b.Text, b.Vector, jdVec, jd, types.SectionProject, "")
		scored = append(scored, types.ScoredBullet{
			ID:           b.ID,
			OriginalText: b.Text,
			Score:        sc.Combine(),
		})
	}
	sortBulletsDescending(scored)
	if maxBullets >= 0 && len(scored) > maxBullets {
		scored = scored[:maxBullets]
	}
	return scored
}

func sortSectionsDescending(sections []types.ScoredSection) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Score > sections[j].Score
	})
}

func sortBulletsDescending(bullets []types.ScoredBullet) {
	sort.SliceStable(bullets, func(i, j int) bool {
		return bullets[i].Score > bullets[j].Score
	})
}

func orPresent(endDate string) string {
	if endDate == "" {
		return types.Present
	}
	return endDate
}

func techStackSubtitle(stack []string) string {
	out := ""
	for i, s := range stack {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
