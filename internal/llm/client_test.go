package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan/resume-optimizer/internal/catalog"
)

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "gemini-2.5-flash", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_BindsSelectedModel(t *testing.T) {
	opt, err := catalog.Lookup("gemini-pro")
	require.NoError(t, err)

	client, err := NewClient(context.Background(), opt, "test-key")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, "gemini-2.5-pro", client.Model())
}

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"job_title\": \"Engineer\"}\n```"
	assert.Equal(t, `{"job_title": "Engineer"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	input := `{"a": 1}`
	assert.Equal(t, input, CleanJSONBlock(input))
}

func TestCleanJSONBlock_Whitespace(t *testing.T) {
	input := "  \n{\"a\": 1}\n  "
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}
