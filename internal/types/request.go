// Package types provides type definitions for structured data used throughout the review-writer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Word count bounds accepted for a generated article.
const (
	MinWordCount = 400
	MaxWordCount = 4000
)

// AffiliateTarget is the affiliate configuration for a single platform.
// Either field may be empty; incomplete entries are skipped when links are built.
type AffiliateTarget struct {
	BaseURL string `json:"baseUrl,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

// AffiliateConfig maps a platform key (e.g. "amazon") to its affiliate settings.
type AffiliateConfig map[string]AffiliateTarget

// GenerationRequest is the validated input of a single article generation run.
type GenerationRequest struct {
	ProductURL    string          `json:"productUrl" validate:"required,url"`
	Language      string          `json:"language" validate:"required,nonblank"`
	Region        string          `json:"region" validate:"required,nonblank"`
	Keywords      []string        `json:"keywords" validate:"required,min=1,dive,nonblank"`
	Persona       string          `json:"persona" validate:"required,nonblank"`
	Tone          string          `json:"tone" validate:"required,nonblank"`
	MinWords      int             `json:"minWords" validate:"min=400,max=4000"`
	IncludeImages bool            `json:"includeImages"`
	Affiliates    AffiliateConfig `json:"affiliates,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// FieldError describes one failed validation rule on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RequestValidationError carries every field error found on a GenerationRequest.
type RequestValidationError struct {
	Errors []FieldError
}

func (e *RequestValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid generation request: " + strings.Join(parts, "; ")
}

// NewValidator returns a validator with the custom rules used by request types registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks the request against its validation tags.
// It returns a *RequestValidationError listing every failed field.
func (r *GenerationRequest) Validate() error {
	return ValidateWith(NewValidator(), r)
}

// ValidateWith validates the request with a caller-provided validator.
func ValidateWith(v *validator.Validate, r *GenerationRequest) error {
	err := v.Struct(r)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &RequestValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	out := &RequestValidationError{Errors: make([]FieldError, 0, len(validationErrors))}
	for _, fe := range validationErrors {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:],
			Message: describeRule(fe),
		})
	}
	return out
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "nonblank":
		return "must not be blank"
	case "url":
		return "must be an absolute URL"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " entry"
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed rule " + fe.Tag()
	}
}
