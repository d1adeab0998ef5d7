// Package server provides the HTTP REST API for the résumé tailoring service.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/resumeforge/tailor/internal/jdinterp"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrProfileNotFound indicates the referenced profile does not exist.
type ErrProfileNotFound struct {
	ProfileID uuid.UUID
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.ProfileID)
}

// ErrResumeNotFound indicates the referenced résumé does not exist.
type ErrResumeNotFound struct {
	ResumeID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// ErrFileNotAvailable indicates the requested render format was never
// produced (renderer failure recorded a null path, per spec.md §7).
type ErrFileNotAvailable struct {
	Format string
}

func (e *ErrFileNotAvailable) Error() string {
	return fmt.Sprintf("no %s file available for this resume", e.Format)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation, *jdinterp.ValidationError:
		return http.StatusUnprocessableEntity
	case *ErrProfileNotFound, *ErrResumeNotFound, *ErrFileNotAvailable:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
