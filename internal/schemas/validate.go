// Package schemas validates the structured JSON artifacts produced by the
// agent pipeline against embedded JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed job_analysis.schema.json
var jobAnalysisSchema string

// ValidationError lists the schema violations found in an artifact.
type ValidationError struct {
	Artifact string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed for %s: %s", e.Artifact, strings.Join(e.Problems, "; "))
}

// ValidateJobAnalysis checks a job_analysis.json document. The returned error
// is advisory: callers log it and keep the artifact, since downstream metadata
// extraction falls back to placeholders on malformed content.
func ValidateJobAnalysis(data []byte) error {
	return validate("job_analysis.json", jobAnalysisSchema, data)
}

func validate(artifact, schema string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return &ValidationError{Artifact: artifact, Problems: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &ValidationError{Artifact: artifact, Problems: problems}
}
