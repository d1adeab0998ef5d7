package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func newTestServer() *Server {
	return &Server{
		validate: validator.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestHandleAnalyzeJD_RejectsMalformedJSON(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/jd/analyze", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()

	s.handleAnalyzeJD(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyzeJD_RejectsShortRawText(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/jd/analyze", strings.NewReader(`{"raw_text":"too short"}`))
	w := httptest.NewRecorder()

	s.handleAnalyzeJD(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
