// Package runner orchestrates one optimization run end to end: it persists
// the uploaded resume, extracts its text, drives the agent pipeline in a
// per-run scratch directory, archives the artifacts under a descriptive
// folder name, and renders the Markdown deliverables to PDF.
package runner

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mohan/resume-optimizer/internal/catalog"
	"github.com/mohan/resume-optimizer/internal/crew"
	"github.com/mohan/resume-optimizer/internal/knowledge"
	"github.com/mohan/resume-optimizer/internal/llm"
	"github.com/mohan/resume-optimizer/internal/outputs"
	"github.com/mohan/resume-optimizer/internal/search"
	"github.com/mohan/resume-optimizer/internal/workspace"
)

// Credentials carries the per-run API keys. The search pair is optional; a
// run without it skips web research sources.
type Credentials struct {
	GeminiAPIKey string
	SearchAPIKey string
	SearchCX     string
}

// Request is one optimization job as submitted by a caller.
type Request struct {
	ModelID     string `validate:"required"`
	ResumeName  string `validate:"required"`
	ResumeData  []byte `validate:"required"`
	CompanyName string `validate:"required"`
	JobURL      string `validate:"required,url"`
	Credentials Credentials
}

// Document is one archived deliverable. PDFPath is empty when rendering for
// that document failed or the source was never produced.
type Document struct {
	Name         string `json:"name"`
	MarkdownPath string `json:"markdown_path"`
	PDFPath      string `json:"pdf_path,omitempty"`
}

// Result describes a completed run.
type Result struct {
	RunID      uuid.UUID  `json:"run_id"`
	Model      string     `json:"model"`
	RunFolder  string     `json:"run_folder"`
	ArchiveDir string     `json:"archive_dir"`
	Status     string     `json:"status"`
	Documents  []Document `json:"documents"`
}

// Converter renders one Markdown file to PDF in the given directory.
type Converter interface {
	ConvertFile(ctx context.Context, mdPath, outDir string) (string, error)
}

// PipelineFactory builds the agent pipeline for one run. The returned close
// function releases the pipeline's resources and may be nil.
type PipelineFactory func(ctx context.Context, model catalog.ModelOption, creds Credentials, onProgress crew.ProgressCallback) (crew.Pipeline, func(), error)

// Runner executes optimization runs against a workspace.
type Runner struct {
	ws          *workspace.Workspace
	newPipeline PipelineFactory
	converter   Converter
	validate    *validator.Validate
	now         func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the wall clock used for filename stamping.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a Runner.
func New(ws *workspace.Workspace, factory PipelineFactory, converter Converter, opts ...Option) *Runner {
	r := &Runner{
		ws:          ws,
		newPipeline: factory,
		converter:   converter,
		validate:    validator.New(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// renderable lists the Markdown deliverables that get a PDF companion.
var renderable = []string{
	outputs.OptimizedResumeFile,
	outputs.FinalReportFile,
	outputs.InterviewQuestionsFile,
}

// Run executes the full flow for one request. Validation failures surface
// before any file is written; pipeline failures are terminal; PDF rendering
// failures degrade the result to Markdown only.
func (r *Runner) Run(ctx context.Context, req Request, onProgress crew.ProgressCallback) (*Result, error) {
	if err := r.validateRequest(req); err != nil {
		return nil, err
	}

	model, err := catalog.Lookup(req.ModelID)
	if err != nil {
		return nil, &ValidationError{Field: "ModelID", Message: err.Error()}
	}

	// The factory validates credentials, so it runs before anything is
	// written to disk.
	pipeline, closePipeline, err := r.newPipeline(ctx, model, req.Credentials, onProgress)
	if err != nil {
		return nil, err
	}
	if closePipeline != nil {
		defer closePipeline()
	}

	savedPath, err := knowledge.SaveUpload(r.ws.KnowledgeDir, req.ResumeName, req.ResumeData, r.now())
	if err != nil {
		return nil, err
	}
	resumeText, err := knowledge.ExtractText(savedPath)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	scratch, err := r.ws.NewRunScratch(runID)
	if err != nil {
		return nil, err
	}
	keepScratch := false
	defer func() {
		if keepScratch {
			log.Printf("[runner] scratch of run %s kept at %s for recovery", runID, scratch)
			return
		}
		if err := r.ws.RemoveRunScratch(runID); err != nil {
			log.Printf("[runner] cleanup of run %s: %v", runID, err)
		}
	}()

	if _, err := pipeline.Run(ctx, crew.Inputs{
		JobURL:      req.JobURL,
		CompanyName: req.CompanyName,
		ResumeText:  resumeText,
		ScratchDir:  scratch,
	}); err != nil {
		return nil, err
	}

	jobTitle := outputs.JobTitle(scratch)
	candidate := outputs.CandidateName(scratch)
	folder := outputs.FolderName(req.CompanyName, jobTitle, candidate, r.now())

	dest, err := outputs.Archive(scratch, r.ws.ArchiveDir, folder)
	if err != nil {
		// The artifacts are intact in scratch; deleting them would turn a
		// move failure into data loss.
		keepScratch = true
		return nil, err
	}

	docs := r.renderDocuments(ctx, dest)

	return &Result{
		RunID:      runID,
		Model:      model.WireID,
		RunFolder:  folder,
		ArchiveDir: dest,
		Status:     fmt.Sprintf("Processing completed using model %s. Output saved in: %s", model.WireID, dest),
		Documents:  docs,
	}, nil
}

// renderDocuments converts each Markdown deliverable to PDF concurrently.
// A failed conversion is logged and leaves that document Markdown-only.
func (r *Runner) renderDocuments(ctx context.Context, dir string) []Document {
	docs := make([]Document, len(renderable))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range renderable {
		docs[i] = Document{Name: name, MarkdownPath: filepath.Join(dir, name)}
		if r.converter == nil {
			continue
		}
		i, name := i, name
		g.Go(func() error {
			pdfPath, err := r.converter.ConvertFile(gctx, filepath.Join(dir, name), dir)
			if err != nil {
				log.Printf("[runner] pdf conversion of %s: %v", name, err)
				return nil
			}
			docs[i].PDFPath = pdfPath
			return nil
		})
	}
	_ = g.Wait()
	return docs
}

func (r *Runner) validateRequest(req Request) error {
	if err := r.validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return &ValidationError{Field: verrs[0].Field(), Message: messageFor(verrs[0])}
		}
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// GeminiPipelineFactory builds the production pipeline: a Gemini client plus,
// when search credentials are present, the Google Programmable Search tool.
func GeminiPipelineFactory(ctx context.Context, model catalog.ModelOption, creds Credentials, onProgress crew.ProgressCallback) (crew.Pipeline, func(), error) {
	if creds.GeminiAPIKey == "" {
		return nil, nil, &ValidationError{Field: "GeminiAPIKey", Message: "is required"}
	}

	client, err := llm.NewClient(ctx, model, creds.GeminiAPIKey)
	if err != nil {
		return nil, nil, err
	}

	opts := []crew.Option{crew.WithProgress(onProgress)}
	if creds.SearchAPIKey != "" && creds.SearchCX != "" {
		searcher, err := search.NewGoogleSearcher(ctx, creds.SearchAPIKey, creds.SearchCX)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		opts = append(opts, crew.WithSearcher(searcher))
	}

	closeFn := func() { _ = client.Close() }
	return crew.New(client, opts...), closeFn, nil
}
