// Package types provides type definitions for structured data used throughout the resume-tailoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ResumeRecord is the persisted header row for one generated résumé version
// (I7: version is strictly monotonic per (profile_id, job_title)).
type ResumeRecord struct {
	ID              string                     `json:"id"`
	ProfileID       string                     `json:"profile_id"`
	JDID            string                     `json:"jd_id"`
	JobTitle        string                     `json:"job_title"`
	Version         int                        `json:"version"`
	PDFPath         string                     `json:"pdf_path,omitempty"`
	DOCXPath        string                     `json:"docx_path,omitempty"`
	JDAnalysis      JDData                     `json:"jd_analysis"`
	SkillConfidence map[string]ConfidenceGrade `json:"skill_confidence"`
	KeywordCoverage map[string]bool            `json:"keyword_coverage"`
	CreatedAt       time.Time                  `json:"created_at"`
}

// ResumeSection is one persisted (section_type, content_blob,
// confidence_flags?) row belonging to a ResumeRecord.
type ResumeSection struct {
	ID              string                     `json:"id"`
	ResumeID        string                     `json:"resume_id"`
	SectionType     string                     `json:"section_type"`
	ContentBlob     []byte                     `json:"content_blob"`
	ConfidenceFlags map[string]ConfidenceGrade `json:"confidence_flags,omitempty"`
}

// ResumeSummary is the read-model returned by GET /api/resumes and
// GET /api/resumes/{id}.
type ResumeSummary struct {
	ResumeID        string                     `json:"resume_id"`
	ProfileID       string                     `json:"profile_id"`
	JobTitle        string                     `json:"job_title"`
	Version         int                        `json:"version"`
	PDFPath         string                     `json:"pdf_path,omitempty"`
	DOCXPath        string                     `json:"docx_path,omitempty"`
	JDAnalysis      JDData                     `json:"jd_analysis"`
	SkillConfidence map[string]ConfidenceGrade `json:"skill_confidence"`
	KeywordCoverage map[string]bool            `json:"keyword_coverage"`
	CreatedAt       time.Time                  `json:"created_at"`
}
