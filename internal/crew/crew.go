// Package crew implements the sequential agent pipeline that analyzes a job
// posting, optimizes a resume against it, researches the hiring company, and
// writes the deliverable documents into the run's scratch directory.
package crew

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mohan/resume-optimizer/internal/llm"
	"github.com/mohan/resume-optimizer/internal/outputs"
	"github.com/mohan/resume-optimizer/internal/search"
)

// Inputs carries everything a pipeline run needs. The resume text is the
// shared knowledge source available to every stage.
type Inputs struct {
	JobURL      string
	CompanyName string
	ResumeText  string
	ScratchDir  string
}

// Manifest lists the artifacts a successful run deposited in the scratch
// directory, keyed by fixed filename.
type Manifest struct {
	ScratchDir string
	Files      []string
}

// Contains reports whether the manifest includes the named artifact.
func (m *Manifest) Contains(name string) bool {
	for _, f := range m.Files {
		if f == name {
			return true
		}
	}
	return false
}

// ProgressEvent reports one stage transition during a run.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// ProgressCallback is invoked as stages start.
type ProgressCallback func(event ProgressEvent)

// Pipeline is the single capability the runner depends on. Tests substitute a
// stub implementation that deposits fixed artifacts deterministically.
type Pipeline interface {
	Run(ctx context.Context, in Inputs) (*Manifest, error)
}

// Crew runs the six stages in fixed order, each stage reading the structured
// outputs of the stages before it.
type Crew struct {
	client     llm.Client
	searcher   search.Searcher
	onProgress ProgressCallback
}

// Option configures a Crew.
type Option func(*Crew)

// WithSearcher supplies the web search tool used by the company research
// stage. Without it, research proceeds on the job analysis alone.
func WithSearcher(s search.Searcher) Option {
	return func(c *Crew) { c.searcher = s }
}

// WithProgress registers a stage progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(c *Crew) { c.onProgress = cb }
}

// New creates a Crew around an LLM client.
func New(client llm.Client, opts ...Option) *Crew {
	c := &Crew{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// stage is one step of the fixed sequential plan.
type stage struct {
	name    string
	outFile string
	run     func(ctx context.Context, in Inputs, st *state) (string, error)
}

// state accumulates stage outputs for downstream prompts.
type state struct {
	jobPosting      string
	jobAnalysis     string
	optimization    string
	research        string
	optimizedResume string
}

// Run executes all stages in order. The first stage failure aborts the run
// with a PipelineError; there is no per-stage retry.
func (c *Crew) Run(ctx context.Context, in Inputs) (*Manifest, error) {
	if in.ScratchDir == "" {
		return nil, &PipelineError{Stage: "setup", Cause: fmt.Errorf("scratch directory is required")}
	}

	stages := []stage{
		{name: "analyze_job", outFile: outputs.JobAnalysisFile, run: c.analyzeJob},
		{name: "optimize_resume", outFile: outputs.ResumeOptimizationFile, run: c.optimizeResume},
		{name: "research_company", outFile: outputs.CompanyResearchFile, run: c.researchCompany},
		{name: "generate_resume", outFile: outputs.OptimizedResumeFile, run: c.generateResume},
		{name: "generate_report", outFile: outputs.FinalReportFile, run: c.generateReport},
		{name: "generate_interview_questions", outFile: outputs.InterviewQuestionsFile, run: c.generateInterviewQuestions},
	}

	manifest := &Manifest{ScratchDir: in.ScratchDir}
	st := &state{}

	for i, s := range stages {
		c.emit(ProgressEvent{
			Stage:   s.name,
			Index:   i + 1,
			Total:   len(stages),
			Message: fmt.Sprintf("Stage %d/%d: %s", i+1, len(stages), s.name),
		})
		fmt.Printf("Stage %d/%d: %s...\n", i+1, len(stages), s.name)

		output, err := s.run(ctx, in, st)
		if err != nil {
			return nil, &PipelineError{Stage: s.name, Cause: err}
		}

		path := filepath.Join(in.ScratchDir, s.outFile)
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			return nil, &PipelineError{Stage: s.name, Cause: fmt.Errorf("failed to write %s: %w", s.outFile, err)}
		}
		manifest.Files = append(manifest.Files, s.outFile)
	}

	return manifest, nil
}

// emit calls the progress callback if one is registered.
func (c *Crew) emit(event ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(event)
	}
}

// logStageWarning records a non-fatal stage condition.
func logStageWarning(stage string, err error) {
	log.Printf("[crew] %s: %v", stage, err)
}
