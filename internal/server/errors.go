package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/review-writer/internal/pipeline"
	"github.com/jonathan/review-writer/internal/types"
)

// ErrBadRequest indicates a request body that could not be decoded.
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var badReq *ErrBadRequest
	var invalid *types.RequestValidationError
	switch {
	case errors.As(err, &badReq), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	stage, _ := pipeline.FailedStage(err)
	switch stage {
	case pipeline.StageValidating, pipeline.StageAffiliateLinks:
		return http.StatusBadRequest
	case pipeline.StageCollecting, pipeline.StageDrafting, pipeline.StageSpellchecking:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error payload. Validation failures list every field.
func errorBody(err error) map[string]any {
	var invalid *types.RequestValidationError
	if errors.As(err, &invalid) {
		return map[string]any{"error": invalid.Errors}
	}
	return map[string]any{"error": err.Error()}
}
