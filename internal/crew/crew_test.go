package crew

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan/resume-optimizer/internal/outputs"
	"github.com/mohan/resume-optimizer/internal/search"
)

// fakeClient returns canned responses and records the prompts it saw.
type fakeClient struct {
	prompts  []string
	jsonResp string
	textResp string
	failOn   int // 1-based call index to fail at; 0 disables
	calls    int
}

func (f *fakeClient) record(prompt string) bool {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.failOn > 0 && f.calls == f.failOn
}

func (f *fakeClient) GenerateText(_ context.Context, prompt string) (string, error) {
	if f.record(prompt) {
		return "", errors.New("model unavailable")
	}
	return f.textResp, nil
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	if f.record(prompt) {
		return "", errors.New("model unavailable")
	}
	return f.jsonResp, nil
}

func (f *fakeClient) Model() string { return "fake-model" }
func (f *fakeClient) Close() error  { return nil }

// fakeSearcher returns one fixed result per query.
type fakeSearcher struct {
	queries []string
	link    string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]search.Result, error) {
	f.queries = append(f.queries, query)
	return []search.Result{{Title: "Acme page", Link: f.link, Snippet: "Acme builds anvils"}}, nil
}

func jobServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body><main>Senior Go Engineer wanted at Acme</main></body></html>`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCrewRun_DepositsAllSixArtifacts(t *testing.T) {
	srv := jobServer(t)
	scratch := t.TempDir()

	client := &fakeClient{
		jsonResp: `{"job_title": "Senior Go Engineer"}`,
		textResp: "# Jane Doe\n\ncontent",
	}
	c := New(client, WithSearcher(&fakeSearcher{link: srv.URL}))

	manifest, err := c.Run(context.Background(), Inputs{
		JobURL:      srv.URL,
		CompanyName: "Acme",
		ResumeText:  "Jane Doe, engineer",
		ScratchDir:  scratch,
	})
	require.NoError(t, err)

	expected := []string{
		outputs.JobAnalysisFile,
		outputs.ResumeOptimizationFile,
		outputs.CompanyResearchFile,
		outputs.OptimizedResumeFile,
		outputs.FinalReportFile,
		outputs.InterviewQuestionsFile,
	}
	assert.Equal(t, expected, manifest.Files)
	for _, name := range expected {
		assert.True(t, manifest.Contains(name))
		_, err := os.Stat(filepath.Join(scratch, name))
		assert.NoError(t, err, "artifact %s should exist", name)
	}
}

func TestCrewRun_StageFailureIsTerminal(t *testing.T) {
	srv := jobServer(t)
	scratch := t.TempDir()

	// Third LLM call (research_company) fails.
	client := &fakeClient{jsonResp: `{"job_title": "x"}`, textResp: "# N", failOn: 3}
	c := New(client)

	_, err := c.Run(context.Background(), Inputs{
		JobURL:      srv.URL,
		CompanyName: "Acme",
		ResumeText:  "resume",
		ScratchDir:  scratch,
	})

	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "research_company", perr.Stage)

	// Later stages never ran.
	_, statErr := os.Stat(filepath.Join(scratch, outputs.OptimizedResumeFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCrewRun_ScrapeFailureFailsFirstStage(t *testing.T) {
	client := &fakeClient{jsonResp: `{}`, textResp: "x"}
	c := New(client)

	_, err := c.Run(context.Background(), Inputs{
		JobURL:      "http://127.0.0.1:1/nope",
		CompanyName: "Acme",
		ResumeText:  "resume",
		ScratchDir:  t.TempDir(),
	})

	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "analyze_job", perr.Stage)
}

func TestCrewRun_RequiresScratchDir(t *testing.T) {
	c := New(&fakeClient{})

	_, err := c.Run(context.Background(), Inputs{JobURL: "http://x", CompanyName: "Acme"})
	assert.Error(t, err)
}

func TestCrewRun_PromptsCarryKnowledgeSource(t *testing.T) {
	srv := jobServer(t)
	client := &fakeClient{jsonResp: `{"job_title": "x"}`, textResp: "# N"}
	c := New(client)

	_, err := c.Run(context.Background(), Inputs{
		JobURL:      srv.URL,
		CompanyName: "Acme",
		ResumeText:  "UNIQUE-RESUME-MARKER",
		ScratchDir:  t.TempDir(),
	})
	require.NoError(t, err)

	// Resume text reaches the optimization and generation stages.
	var carried int
	for _, p := range client.prompts {
		if strings.Contains(p, "UNIQUE-RESUME-MARKER") {
			carried++
		}
	}
	assert.GreaterOrEqual(t, carried, 2)
}

func TestCrewRun_SearchQueriesMentionCompany(t *testing.T) {
	srv := jobServer(t)
	searcher := &fakeSearcher{link: srv.URL}
	client := &fakeClient{jsonResp: `{"job_title": "x"}`, textResp: "# N"}
	c := New(client, WithSearcher(searcher))

	_, err := c.Run(context.Background(), Inputs{
		JobURL:      srv.URL,
		CompanyName: "Globex",
		ResumeText:  "resume",
		ScratchDir:  t.TempDir(),
	})
	require.NoError(t, err)

	require.NotEmpty(t, searcher.queries)
	for _, q := range searcher.queries {
		assert.Contains(t, q, "Globex")
	}
}

func TestTruncate_KeepsRuneBoundaries(t *testing.T) {
	// Four two-byte runes; a byte-index cut at 5 would split the third one.
	s := "éééé"
	require.Len(t, s, 8)

	for max := 0; max <= len(s); max++ {
		cut := truncate(s, max)
		assert.LessOrEqual(t, len(cut), max)
		assert.True(t, utf8.ValidString(cut), "truncate(%q, %d) = %q is not valid UTF-8", s, max, cut)
	}
	assert.Equal(t, "éé", truncate(s, 5))
	assert.Equal(t, s, truncate(s, len(s)))
}

func TestCrewRun_EmitsProgressInOrder(t *testing.T) {
	srv := jobServer(t)
	client := &fakeClient{jsonResp: `{"job_title": "x"}`, textResp: "# N"}

	var events []ProgressEvent
	c := New(client, WithProgress(func(e ProgressEvent) { events = append(events, e) }))

	_, err := c.Run(context.Background(), Inputs{
		JobURL:      srv.URL,
		CompanyName: "Acme",
		ResumeText:  "resume",
		ScratchDir:  t.TempDir(),
	})
	require.NoError(t, err)

	require.Len(t, events, 6)
	assert.Equal(t, "analyze_job", events[0].Stage)
	assert.Equal(t, 1, events[0].Index)
	assert.Equal(t, "generate_interview_questions", events[5].Stage)
	assert.Equal(t, 6, events[5].Total)
}
