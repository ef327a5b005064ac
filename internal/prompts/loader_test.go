package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownStagePrompts(t *testing.T) {
	stages := []string{
		"analyze_job",
		"optimize_resume",
		"research_company",
		"generate_resume",
		"generate_report",
		"generate_interview_questions",
	}

	for _, stage := range stages {
		tmpl, err := Get("crew.json", stage)
		require.NoError(t, err, "stage %s", stage)
		assert.NotEmpty(t, tmpl)
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("crew.json", "does_not_exist")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "analyze_job")
	assert.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	result := Format("Hello {{.Name}}, apply to {{.Company}}", map[string]string{
		"Name":    "Jane",
		"Company": "Acme",
	})
	assert.Equal(t, "Hello Jane, apply to Acme", result)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	result := Format("{{.Known}} {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x {{.Unknown}}", result)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("crew.json", "missing_key") })
}

func TestGeneratedResumePromptDemandsHeading(t *testing.T) {
	tmpl := MustGet("crew.json", "generate_resume")
	// Downstream metadata extraction reads the candidate name from the first
	// heading line, so the prompt must pin that format.
	assert.Contains(t, tmpl, "level-1 heading")
}
