package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/resumeforge/tailor/internal/jdinterp"
	"github.com/resumeforge/tailor/internal/types"
)

// AnalyzeJDRequest is the body of POST /api/jd/analyze.
type AnalyzeJDRequest struct {
	RawText string `json:"raw_text" validate:"required,min=20"`
}

// AnalyzeJDResponse is the body of a successful POST /api/jd/analyze.
type AnalyzeJDResponse struct {
	ID             string       `json:"id"`
	StructuredData types.JDData `json:"structured_data"`
	CreatedAt      time.Time    `json:"created_at"`
}

// handleAnalyzeJD interprets a raw job description and persists the result
// (spec.md §6: `POST /api/jd/analyze` -> 201, or 422 if raw_text is too short).
func (s *Server) handleAnalyzeJD(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeJDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "raw_text must be at least 20 characters")
		return
	}

	jd, err := jdinterp.Interpret(r.Context(), req.RawText, s.generator.Config.LLMAPIKey, s.logger)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "failed to interpret job description: "+err.Error())
		return
	}

	id, createdAt, err := s.db.SaveJDAnalysis(r.Context(), *jd, req.RawText)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save jd analysis: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, AnalyzeJDResponse{
		ID:             id.String(),
		StructuredData: *jd,
		CreatedAt:      createdAt,
	})
}
