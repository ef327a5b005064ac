// Package outputs locates the artifacts a pipeline run produced, derives the
// run's identifying metadata from them, and archives them into a uniquely
// named folder.
package outputs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fixed artifact filenames deposited by the pipeline.
const (
	JobAnalysisFile        = "job_analysis.json"
	ResumeOptimizationFile = "resume_optimization.json"
	CompanyResearchFile    = "company_research.json"
	OptimizedResumeFile    = "optimized_resume.md"
	FinalReportFile        = "final_report.md"
	InterviewQuestionsFile = "interview_questions.md"
)

// Placeholders substituted when metadata cannot be derived. Metadata
// extraction fails open: a missing or malformed artifact never aborts a run.
const (
	PlaceholderJobTitle  = "position"
	PlaceholderCandidate = "candidate"
)

// JobTitle reads the job title from job_analysis.json in scratchDir. Any read
// or parse failure yields the placeholder, never an error.
func JobTitle(scratchDir string) string {
	data, err := os.ReadFile(filepath.Join(scratchDir, JobAnalysisFile))
	if err != nil {
		return PlaceholderJobTitle
	}

	var analysis struct {
		JobTitle string `json:"job_title"`
	}
	if err := json.Unmarshal(data, &analysis); err != nil || strings.TrimSpace(analysis.JobTitle) == "" {
		return PlaceholderJobTitle
	}
	return analysis.JobTitle
}

// CandidateName derives the candidate's name from the first line of
// optimized_resume.md. A heading line like "# Jane Doe" yields "Jane_Doe";
// anything else yields the placeholder.
func CandidateName(scratchDir string) string {
	f, err := os.Open(filepath.Join(scratchDir, OptimizedResumeFile))
	if err != nil {
		return PlaceholderCandidate
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return PlaceholderCandidate
	}

	first := scanner.Text()
	if !strings.HasPrefix(first, "#") {
		return PlaceholderCandidate
	}

	name := strings.TrimSpace(strings.TrimLeft(first, "#"))
	if name == "" {
		return PlaceholderCandidate
	}
	return strings.ReplaceAll(name, " ", "_")
}

// FolderName computes the archive folder name for a run:
// <company>_<jobTitle>_<candidate>_<YYYYMMDD>, with every part passed through
// the filesystem-safe sanitizer.
func FolderName(company, jobTitle, candidate string, date time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s",
		Sanitize(company),
		Sanitize(jobTitle),
		Sanitize(candidate),
		date.Format("20060102"),
	)
}
