// Package types provides type definitions for structured data used throughout the resume-tailoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeDocument is the immutable render input assembled by C7: identical
// shape to ResumeDraft but with bullets resolved to final strings and all
// vectors stripped (I6: only configured ATS section types are present).
type ResumeDocument struct {
	JDData JDData `json:"jd_data"`

	ExperienceSections []DocumentSection `json:"experience_sections,omitempty"`
	ProjectSections    []DocumentSection `json:"project_sections,omitempty"`

	SelectedSkills  []string                   `json:"selected_skills,omitempty"`
	SkillConfidence map[string]ConfidenceGrade `json:"skill_confidence,omitempty"`
	KeywordCoverage map[string]bool            `json:"keyword_coverage"`

	PersonalInfo     *PersonalInfo     `json:"personal_info,omitempty"`
	Education        []Education       `json:"education,omitempty"`
	Certifications   []Certification   `json:"certifications,omitempty"`
	Achievements     []Achievement     `json:"achievements,omitempty"`
	ExternalProfiles []ExternalProfile `json:"external_profiles,omitempty"`
}

// DocumentSection is a ScoredSection with bullets resolved to plain text.
type DocumentSection struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Bullets  []string `json:"bullets"`
}

// SectionBlob is one (section_type, content_blob, confidence_flags?) row
// produced by Assembler.ToSections for persistence.
type SectionBlob struct {
	SectionType     string          `json:"section_type"`
	ContentBlob     []byte          `json:"content_blob"`
	ConfidenceFlags map[string]ConfidenceGrade `json:"confidence_flags,omitempty"`
}

// CanonicalSectionOrder is the fixed ATS ordering used by the Assembler and
// by ATSOrdering validation (I6).
var CanonicalSectionOrder = []string{
	"personal_info",
	"education",
	"experience",
	"projects",
	"skills",
	"certifications",
	"achievements",
	"external_profiles",
}
