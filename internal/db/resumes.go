package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/resumeforge/tailor/internal/types"
)

// NextResumeVersion computes 1 + count(existing resumes where profile_id and
// job_title match), scoped to the given transaction so it stays consistent
// with the insert that follows it (spec.md §4.8 versioning law).
func NextResumeVersion(ctx context.Context, tx pgx.Tx, profileID uuid.UUID, jobTitle string) (int, error) {
	var count int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM resumes WHERE profile_id = $1 AND job_title = $2`,
		profileID, jobTitle,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count existing resumes: %w", err)
	}
	return count + 1, nil
}

// PersistResume inserts a ResumeRecord and one ResumeSection row per entry
// in sections, as a single atomic unit: the orchestrator must commit both
// or neither (spec.md §5 cancellation guarantee).
func (db *DB) PersistResume(ctx context.Context, record types.ResumeRecord, sections []types.SectionBlob) (types.ResumeRecord, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return types.ResumeRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	profileID, err := uuid.Parse(record.ProfileID)
	if err != nil {
		return types.ResumeRecord{}, fmt.Errorf("invalid profile id: %w", err)
	}

	version, err := NextResumeVersion(ctx, tx, profileID, record.JobTitle)
	if err != nil {
		return types.ResumeRecord{}, err
	}
	record.Version = version

	jdAnalysis, err := json.Marshal(record.JDAnalysis)
	if err != nil {
		return types.ResumeRecord{}, fmt.Errorf("failed to marshal jd analysis: %w", err)
	}
	skillConfidence, err := json.Marshal(record.SkillConfidence)
	if err != nil {
		return types.ResumeRecord{}, fmt.Errorf("failed to marshal skill confidence: %w", err)
	}
	keywordCoverage, err := json.Marshal(record.KeywordCoverage)
	if err != nil {
		return types.ResumeRecord{}, fmt.Errorf("failed to marshal keyword coverage: %w", err)
	}

	var id uuid.UUID
	var createdAt time.Time
	err = tx.QueryRow(ctx,
		`INSERT INTO resumes (profile_id, job_title, version, pdf_path, docx_path, jd_analysis, skill_confidence, keyword_coverage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		profileID, record.JobTitle, record.Version, nullIfEmpty(record.PDFPath), nullIfEmpty(record.DOCXPath),
		jdAnalysis, skillConfidence, keywordCoverage,
	).Scan(&id, &createdAt)
	if err != nil {
		return types.ResumeRecord{}, fmt.Errorf("failed to insert resume: %w", err)
	}
	record.ID = id.String()
	record.CreatedAt = createdAt

	for _, s := range sections {
		var flags any
		if s.ConfidenceFlags != nil {
			flags = s.ConfidenceFlags
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO resume_sections (resume_id, section_type, content_blob, confidence_flags)
			 VALUES ($1, $2, $3, $4)`,
			id, s.SectionType, s.ContentBlob, flags,
		)
		if err != nil {
			return types.ResumeRecord{}, fmt.Errorf("failed to insert resume section %q: %w", s.SectionType, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return types.ResumeRecord{}, fmt.Errorf("failed to commit resume: %w", err)
	}
	return record, nil
}

// GetResumeSummary returns a single resume's summary, or nil if not found.
func (db *DB) GetResumeSummary(ctx context.Context, resumeID uuid.UUID) (*types.ResumeSummary, error) {
	var summary types.ResumeSummary
	var id, profileID uuid.UUID
	var pdfPath, docxPath *string
	var jdAnalysis, skillConfidence, keywordCoverage []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, profile_id, job_title, version, pdf_path, docx_path, jd_analysis, skill_confidence, keyword_coverage, created_at
		 FROM resumes WHERE id = $1`,
		resumeID,
	).Scan(&id, &profileID, &summary.JobTitle, &summary.Version, &pdfPath, &docxPath,
		&jdAnalysis, &skillConfidence, &keywordCoverage, &summary.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	summary.ResumeID = id.String()
	summary.ProfileID = profileID.String()
	if pdfPath != nil {
		summary.PDFPath = *pdfPath
	}
	if docxPath != nil {
		summary.DOCXPath = *docxPath
	}
	if err := unmarshalSummaryBlobs(&summary, jdAnalysis, skillConfidence, keywordCoverage); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListResumesByProfile returns every resume for a profile, newest first.
func (db *DB) ListResumesByProfile(ctx context.Context, profileID uuid.UUID) ([]types.ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, profile_id, job_title, version, pdf_path, docx_path, jd_analysis, skill_confidence, keyword_coverage, created_at
		 FROM resumes WHERE profile_id = $1 ORDER BY created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var out []types.ResumeSummary
	for rows.Next() {
		var s types.ResumeSummary
		var id, pid uuid.UUID
		var pdfPath, docxPath *string
		var jdAnalysis, skillConfidence, keywordCoverage []byte
		if err := rows.Scan(&id, &pid, &s.JobTitle, &s.Version, &pdfPath, &docxPath,
			&jdAnalysis, &skillConfidence, &keywordCoverage, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		s.ResumeID = id.String()
		s.ProfileID = pid.String()
		if pdfPath != nil {
			s.PDFPath = *pdfPath
		}
		if docxPath != nil {
			s.DOCXPath = *docxPath
		}
		if err := unmarshalSummaryBlobs(&s, jdAnalysis, skillConfidence, keywordCoverage); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func unmarshalSummaryBlobs(s *types.ResumeSummary, jdAnalysis, skillConfidence, keywordCoverage []byte) error {
	if len(jdAnalysis) > 0 {
		if err := json.Unmarshal(jdAnalysis, &s.JDAnalysis); err != nil {
			return fmt.Errorf("failed to unmarshal jd analysis: %w", err)
		}
	}
	if len(skillConfidence) > 0 {
		if err := json.Unmarshal(skillConfidence, &s.SkillConfidence); err != nil {
			return fmt.Errorf("failed to unmarshal skill confidence: %w", err)
		}
	}
	if len(keywordCoverage) > 0 {
		if err := json.Unmarshal(keywordCoverage, &s.KeywordCoverage); err != nil {
			return fmt.Errorf("failed to unmarshal keyword coverage: %w", err)
		}
	}
	return nil
}

// PeekNextVersion returns the version a resume for (profileID, jobTitle)
// would receive if persisted right now, without holding any lock. Used by
// the orchestrator's version/render phases to name output files ahead of
// the authoritative, transactionally-recomputed version assigned by
// PersistResume; under concurrent requests for the same pair the two can
// diverge by one, which only affects the file name, not the I7 invariant.
func (db *DB) PeekNextVersion(ctx context.Context, profileID uuid.UUID, jobTitle string) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM resumes WHERE profile_id = $1 AND job_title = $2`,
		profileID, jobTitle,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count existing resumes: %w", err)
	}
	return count + 1, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
