package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/review-writer/internal/pipeline"
	"github.com/jonathan/review-writer/internal/types"
)

// maxRequestBytes bounds a generation request body.
const maxRequestBytes = 1 << 20

func decodeRequest(w http.ResponseWriter, r *http.Request) (*types.GenerationRequest, error) {
	var req types.GenerationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ErrBadRequest{Message: "request body is empty"}
		}
		return nil, &ErrBadRequest{Message: "invalid request body", Cause: err}
	}
	return &req, nil
}

// handleGenerate runs a generation and returns the response as JSON.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp, err := s.generator.GenerateWithProgress(r.Context(), req, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGenerateStream runs a generation and streams progress via SSE.
// The last event is "result" on success or "error" on failure.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp, err := s.generator.GenerateWithProgress(r.Context(), req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			s.logger.Debug("failed to write SSE event", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Warn("streaming generation failed", zap.Error(err))
		sse.WriteError(err)
		return
	}
	if err := sse.WriteEvent("result", resp); err != nil {
		s.logger.Warn("failed to write SSE result", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("generation failed", zap.Int("status", status), zap.Error(err))
	}
	s.jsonResponse(w, status, errorBody(err))
}
