// Package pipeline wires the C1-C8 generation components into the single
// request-scoped flow described by spec.md §4.8: analyze_jd, embed_jd,
// ensure_profile_embeddings, select, rewrite, enforce_ats, assemble,
// version, render, persist.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/resumeforge/tailor/internal/assembly"
	"github.com/resumeforge/tailor/internal/ats"
	"github.com/resumeforge/tailor/internal/config"
	"github.com/resumeforge/tailor/internal/db"
	"github.com/resumeforge/tailor/internal/embedding"
	"github.com/resumeforge/tailor/internal/jdinterp"
	"github.com/resumeforge/tailor/internal/observability"
	"github.com/resumeforge/tailor/internal/rendering"
	"github.com/resumeforge/tailor/internal/rewriting"
	"github.com/resumeforge/tailor/internal/selection"
	"github.com/resumeforge/tailor/internal/types"
	"github.com/resumeforge/tailor/internal/validation"
)

// Generator holds the dependencies the ten-phase pipeline needs across
// requests: a database handle, a long-lived embedding backend, and config.
// One Generator is constructed at startup and shared by every request.
type Generator struct {
	DB      *db.DB
	Backend embedding.Backend
	Config  *config.PipelineConfig
	Logger  *slog.Logger

	// Printer, when set, emits the teacher's verbose-mode boxes after each
	// major phase. Left nil in the HTTP server path; wired by the CLI's
	// --verbose flag.
	Printer *observability.Printer
}

// NewGenerator wires a Generator from already-constructed dependencies.
func NewGenerator(database *db.DB, backend embedding.Backend, cfg *config.PipelineConfig, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{DB: database, Backend: backend, Config: cfg, Logger: logger}
}

// RunGeneration executes the full generation pipeline for one (profile_id,
// jd_text) request and returns the persisted résumé's summary.
func (g *Generator) RunGeneration(ctx context.Context, profileID uuid.UUID, jdText string) (*types.ResumeSummary, error) {
	profile, err := g.DB.GetProfile(ctx, profileID)
	if err != nil {
		return nil, &StageError{Stage: "load_profile", Message: "failed to load profile", Cause: err}
	}
	if profile == nil {
		return nil, &StageError{Stage: "load_profile", Message: fmt.Sprintf("profile not found: %s", profileID)}
	}

	// analyze_jd
	jd, err := jdinterp.Interpret(ctx, jdText, g.Config.LLMAPIKey, g.Logger)
	if err != nil {
		return nil, &StageError{Stage: "analyze_jd", Message: "failed to interpret job description", Cause: err}
	}
	if g.Printer != nil {
		g.Printer.PrintJDData(jd)
	}

	// embed_jd
	jdVector, err := embedding.EmbedJD(ctx, g.Backend, *jd)
	if err != nil {
		return nil, &StageError{Stage: "embed_jd", Message: "failed to embed job description", Cause: err}
	}

	// ensure_profile_embeddings — serialized per profile_id (spec.md §5)
	err = g.DB.WithProfileLock(ctx, profileID, func(ctx context.Context) error {
		if err := embedding.EnsureProfileEmbeddings(ctx, g.Backend, profile); err != nil {
			return err
		}
		return g.DB.SaveProfileEmbeddings(ctx, *profile)
	})
	if err != nil {
		return nil, &StageError{Stage: "ensure_profile_embeddings", Message: "failed to fill profile embeddings", Cause: err}
	}

	// select
	limits := selection.Limits{
		MaxExperienceSections: g.Config.MaxExperienceSections,
		MaxProjectSections:    g.Config.MaxProjectSections,
		MaxBulletsPerSection:  g.Config.MaxBulletsPerSection,
		MaxSkills:             g.Config.MaxSkills,
	}
	draft := selection.Select(ctx, *profile, *jd, jdVector, g.Backend, limits)
	if g.Printer != nil {
		g.Printer.PrintResumeDraft(draft)
	}

	// rewrite — in place, per section, under the JD's title and keywords
	for i := range draft.ExperienceSections {
		draft.ExperienceSections[i].Bullets = rewriting.RewriteBullets(
			ctx, draft.ExperienceSections[i].Bullets, jd.RoleTitle, jd.Keywords, g.Config.LLMAPIKey, g.Logger,
		)
	}
	for i := range draft.ProjectSections {
		draft.ProjectSections[i].Bullets = rewriting.RewriteBullets(
			ctx, draft.ProjectSections[i].Bullets, jd.RoleTitle, jd.Keywords, g.Config.LLMAPIKey, g.Logger,
		)
	}

	// enforce_ats
	ats.Enforce(draft, g.Config)

	// assemble
	doc := assembly.Assemble(*draft)
	sections, err := assembly.ToSections(doc)
	if err != nil {
		return nil, &StageError{Stage: "assemble", Message: "failed to serialize document sections", Cause: err}
	}
	if g.Printer != nil {
		g.Printer.PrintResumeDocument(&doc)
		g.Printer.PrintKeywordCoverage(doc.KeywordCoverage)
	}

	// version — a preview for file naming only; PersistResume recomputes
	// the authoritative, monotonic version inside its own transaction.
	previewVersion, err := g.DB.PeekNextVersion(ctx, profileID, jd.RoleTitle)
	if err != nil {
		return nil, &StageError{Stage: "version", Message: "failed to preview next version", Cause: err}
	}

	// render — PDF and DOCX are independent attempts; DOCX always runs
	// regardless of whether PDF succeeded (spec.md §4.8).
	pdfPath, docxPath := g.render(ctx, doc, jd.RoleTitle, previewVersion)

	// persist
	record := types.ResumeRecord{
		ProfileID:       profileID.String(),
		JobTitle:        jd.RoleTitle,
		PDFPath:         pdfPath,
		DOCXPath:        docxPath,
		JDAnalysis:      *jd,
		SkillConfidence: draft.SkillConfidence,
		KeywordCoverage: doc.KeywordCoverage,
	}
	record, err = g.DB.PersistResume(ctx, record, sections)
	if err != nil {
		return nil, &StageError{Stage: "persist", Message: "failed to persist resume", Cause: err}
	}

	return &types.ResumeSummary{
		ResumeID:        record.ID,
		ProfileID:       record.ProfileID,
		JobTitle:        record.JobTitle,
		Version:         record.Version,
		PDFPath:         record.PDFPath,
		DOCXPath:        record.DOCXPath,
		JDAnalysis:      *jd,
		SkillConfidence: draft.SkillConfidence,
		KeywordCoverage: draft.KeywordCoverage,
		CreatedAt:       record.CreatedAt,
	}, nil
}

// render attempts a PDF and a DOCX render concurrently. On any renderer
// error it logs and returns "" for that path; it never returns an error
// itself, since a resume_id and its structured sections are the primary
// product even when both renders fail (spec.md §4.8).
func (g *Generator) render(ctx context.Context, doc types.ResumeDocument, jobTitle string, version int) (pdfPath, docxPath string) {
	if err := os.MkdirAll(g.Config.OutputDir, 0755); err != nil {
		g.Logger.Error("failed to create output directory", "error", err, "dir", g.Config.OutputDir)
		return "", ""
	}

	var grp errgroup.Group

	grp.Go(func() error {
		pdfPath = g.renderPDF(ctx, doc, jobTitle, version)
		return nil
	})
	grp.Go(func() error {
		docxPath = g.renderDOCX(doc, jobTitle, version)
		return nil
	})
	_ = grp.Wait()

	return pdfPath, docxPath
}

func (g *Generator) renderPDF(_ context.Context, doc types.ResumeDocument, jobTitle string, version int) string {
	latex, err := rendering.RenderLaTeX(doc, "")
	if err != nil {
		g.Logger.Error("failed to render LaTeX", "error", err)
		return ""
	}

	workDir, err := os.MkdirTemp("", "resumeforge-latex-*")
	if err != nil {
		g.Logger.Error("failed to create LaTeX work directory", "error", err)
		return ""
	}
	defer func() { _ = validation.CleanupCompilationArtifacts(workDir) }()

	fileName := resumeFileName(jobTitle, version, "tex")
	texPath := filepath.Join(workDir, fileName)
	if err := os.WriteFile(texPath, []byte(latex), 0644); err != nil {
		g.Logger.Error("failed to write LaTeX source", "error", err)
		return ""
	}

	compiledPDF, logOutput, err := validation.CompileLaTeX(texPath, workDir)
	if err != nil {
		g.Logger.Error("pdflatex compilation failed, recording pdf_path=null", "error", err, "log", logOutput)
		return ""
	}

	finalPath := filepath.Join(g.Config.OutputDir, resumeFileName(jobTitle, version, "pdf"))
	pdfBytes, err := os.ReadFile(compiledPDF)
	if err != nil {
		g.Logger.Error("failed to read compiled pdf", "error", err)
		return ""
	}
	if err := os.WriteFile(finalPath, pdfBytes, 0644); err != nil {
		g.Logger.Error("failed to copy compiled pdf to output directory", "error", err)
		return ""
	}
	return finalPath
}

func (g *Generator) renderDOCX(doc types.ResumeDocument, jobTitle string, version int) string {
	finalPath := filepath.Join(g.Config.OutputDir, resumeFileName(jobTitle, version, "docx"))
	if err := rendering.RenderDOCX(doc, finalPath); err != nil {
		g.Logger.Error("failed to render docx, recording docx_path=null", "error", err)
		return ""
	}
	return finalPath
}
