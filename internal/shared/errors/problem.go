// Package errors provides RFC 7807 Problem Details for the order HTTP API.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithField returns a copy carrying one more field-level message.
func (p ProblemDetail) WithField(field, msg string) ProblemDetail {
	fields := make(map[string]string, len(p.Fields)+1)
	for k, v := range p.Fields {
		fields[k] = v
	}
	fields[field] = msg
	p.Fields = fields
	return p
}

const (
	TypeValidation = "/problems/validation-error"
	TypeNotFound   = "/problems/not-found"
	TypeBadRequest = "/problems/bad-request"
	TypeInternal   = "/problems/internal-error"
)

var (
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier))
}

// Decode parses a problem+json body. It reports false when the body is not a problem document.
func Decode(body []byte) (ProblemDetail, bool) {
	var p ProblemDetail
	if err := json.Unmarshal(body, &p); err != nil {
		return ProblemDetail{}, false
	}
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Detail) == "" {
		return ProblemDetail{}, false
	}
	return p, true
}
