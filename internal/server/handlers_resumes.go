package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/resumeforge/tailor/internal/pipeline"
)

// GenerateResumeRequest is the body of POST /api/resumes/generate.
type GenerateResumeRequest struct {
	ProfileID string `json:"profile_id" validate:"required,uuid"`
	JDText    string `json:"jd_text" validate:"required,min=20"`
}

// handleGenerateResume runs the full ten-phase generation pipeline for one
// (profile_id, jd_text) request (spec.md §6: `POST /api/resumes/generate`).
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	var req GenerateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "profile_id and jd_text (>=20 chars) are required: "+err.Error())
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "invalid profile_id")
		return
	}

	summary, err := s.generator.RunGeneration(r.Context(), profileID, req.JDText)
	if err != nil {
		s.handlePipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, summary)
}

func (s *Server) handlePipelineError(w http.ResponseWriter, err error) {
	var stageErr *pipeline.StageError
	status := http.StatusInternalServerError
	if asStageError(err, &stageErr) && stageErr.Stage == "load_profile" {
		status = http.StatusNotFound
	}
	s.errorResponse(w, status, err.Error())
}

func asStageError(err error, target **pipeline.StageError) bool {
	for err != nil {
		if se, ok := err.(*pipeline.StageError); ok {
			*target = se
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// handleListResumes returns every résumé generated for a profile (spec.md §6:
// `GET /api/resumes?profile_id=...`).
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	profileIDStr := r.URL.Query().Get("profile_id")
	if profileIDStr == "" {
		s.errorResponse(w, http.StatusUnprocessableEntity, "profile_id query parameter is required")
		return
	}
	profileID, err := uuid.Parse(profileIDStr)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "invalid profile_id")
		return
	}

	summaries, err := s.db.ListResumesByProfile(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleGetResume returns one résumé's summary by ID (spec.md §6:
// `GET /api/resumes/{id}`).
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	summary, err := s.db.GetResumeSummary(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if summary == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, summary)
}

// handleDownloadResume streams the rendered PDF or DOCX for a résumé (spec.md
// §6: `GET /api/resumes/{id}/download?format=pdf|docx`).
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	format := r.URL.Query().Get("format")
	if format != "pdf" && format != "docx" {
		s.errorResponse(w, http.StatusUnprocessableEntity, "format must be pdf or docx")
		return
	}

	summary, err := s.db.GetResumeSummary(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if summary == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	path := summary.PDFPath
	if format == "docx" {
		path = summary.DOCXPath
	}
	if path == "" {
		s.errorResponse(w, http.StatusNotFound, "no "+format+" file available for this resume")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}
