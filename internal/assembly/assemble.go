// Package assembly implements the Assembler (C7): the pure transform from
// a ResumeDraft to a finalized ResumeDocument, in canonical ATS order.
package assembly

import (
	"encoding/json"

	"github.com/resumeforge/tailor/internal/types"
)

// Assemble converts a ResumeDraft into a ResumeDocument. Bullets resolve to
// EffectiveText(); sections whose source is empty are elided entirely.
// Pure: calling it twice on an equal draft yields equal documents.
func Assemble(draft types.ResumeDraft) types.ResumeDocument {
	doc := types.ResumeDocument{
		JDData:          draft.JDData,
		KeywordCoverage: draft.KeywordCoverage,

		PersonalInfo:     draft.PersonalInfo,
		Education:        draft.Education,
		Certifications:   draft.Certifications,
		Achievements:     draft.Achievements,
		ExternalProfiles: draft.ExternalProfiles,
	}

	if len(draft.ExperienceSections) > 0 {
		doc.ExperienceSections = documentSections(draft.ExperienceSections)
	}
	if len(draft.ProjectSections) > 0 {
		doc.ProjectSections = documentSections(draft.ProjectSections)
	}
	if len(draft.SelectedSkills) > 0 {
		doc.SelectedSkills = draft.SelectedSkills
		doc.SkillConfidence = draft.SkillConfidence
	}

	return doc
}

func documentSections(sections []types.ScoredSection) []types.DocumentSection {
	out := make([]types.DocumentSection, 0, len(sections))
	for _, s := range sections {
		bullets := make([]string, 0, len(s.Bullets))
		for _, b := range s.Bullets {
			bullets = append(bullets, b.EffectiveText())
		}
		out = append(out, types.DocumentSection{
			Title:    s.Title,
			Subtitle: s.Subtitle,
			Bullets:  bullets,
		})
	}
	return out
}

// ToSections produces one SectionBlob per non-empty section of doc, in
// CanonicalSectionOrder. The skills section carries SkillConfidence as
// ConfidenceFlags; every other section carries none.
func ToSections(doc types.ResumeDocument) ([]types.SectionBlob, error) {
	var blobs []types.SectionBlob

	for _, sectionType := range types.CanonicalSectionOrder {
		var content any
		var flags map[string]types.ConfidenceGrade

		switch sectionType {
		case "personal_info":
			if doc.PersonalInfo == nil {
				continue
			}
			content = doc.PersonalInfo
		case "education":
			if len(doc.Education) == 0 {
				continue
			}
			content = doc.Education
		case "experience":
			if len(doc.ExperienceSections) == 0 {
				continue
			}
			content = doc.ExperienceSections
		case "projects":
			if len(doc.ProjectSections) == 0 {
				continue
			}
			content = doc.ProjectSections
		case "skills":
			if len(doc.SelectedSkills) == 0 {
				continue
			}
			content = doc.SelectedSkills
			flags = doc.SkillConfidence
		case "certifications":
			if len(doc.Certifications) == 0 {
				continue
			}
			content = doc.Certifications
		case "achievements":
			if len(doc.Achievements) == 0 {
				continue
			}
			content = doc.Achievements
		case "external_profiles":
			if len(doc.ExternalProfiles) == 0 {
				continue
			}
			content = doc.ExternalProfiles
		default:
			continue
		}

		blob, err := json.Marshal(content)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, types.SectionBlob{
			SectionType:     sectionType,
			ContentBlob:     blob,
			ConfidenceFlags: flags,
		})
	}

	return blobs, nil
}
