package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/mohan/resume-optimizer/internal/crew"
	"github.com/mohan/resume-optimizer/internal/knowledge"
	"github.com/mohan/resume-optimizer/internal/runner"
)

// ErrRunNotFound indicates the run ID is unknown.
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrDocumentNotFound indicates the run completed without the named document.
type ErrDocumentNotFound struct {
	Name string
}

func (e *ErrDocumentNotFound) Error() string {
	return fmt.Sprintf("document not found: %s", e.Name)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		runnerValidation    *runner.ValidationError
		knowledgeValidation *knowledge.ValidationError
		pipelineErr         *crew.PipelineError
		notFound            *ErrRunNotFound
		docNotFound         *ErrDocumentNotFound
	)
	switch {
	case errors.As(err, &runnerValidation), errors.As(err, &knowledgeValidation):
		return http.StatusBadRequest
	case errors.As(err, &pipelineErr):
		return http.StatusBadGateway
	case errors.As(err, &notFound), errors.As(err, &docNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
