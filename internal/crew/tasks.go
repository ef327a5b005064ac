package crew

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mohan/resume-optimizer/internal/fetch"
	"github.com/mohan/resume-optimizer/internal/prompts"
	"github.com/mohan/resume-optimizer/internal/schemas"
	"github.com/mohan/resume-optimizer/internal/search"
)

// maxPromptChars truncates scraped pages so a single noisy job board cannot
// blow the context window.
const maxPromptChars = 20000

// analyzeJob scrapes the job posting and extracts structured requirements.
func (c *Crew) analyzeJob(ctx context.Context, in Inputs, st *state) (string, error) {
	posting, err := fetch.Text(ctx, in.JobURL, fetch.JobPostingSelectors())
	if err != nil {
		return "", fmt.Errorf("failed to scrape job posting: %w", err)
	}
	st.jobPosting = truncate(posting, maxPromptChars)

	prompt := prompts.Format(prompts.MustGet("crew.json", "analyze_job"), map[string]string{
		"JobPosting": st.jobPosting,
	})
	analysis, err := c.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", err
	}

	// Advisory only: malformed analysis still gets written, and downstream
	// metadata extraction falls back to a placeholder title.
	if err := schemas.ValidateJobAnalysis([]byte(analysis)); err != nil {
		logStageWarning("analyze_job", err)
	}

	st.jobAnalysis = analysis
	return analysis, nil
}

// optimizeResume compares the resume against the job analysis.
func (c *Crew) optimizeResume(ctx context.Context, in Inputs, st *state) (string, error) {
	prompt := prompts.Format(prompts.MustGet("crew.json", "optimize_resume"), map[string]string{
		"JobAnalysis": st.jobAnalysis,
		"Resume":      truncate(in.ResumeText, maxPromptChars),
	})
	optimization, err := c.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", err
	}
	st.optimization = optimization
	return optimization, nil
}

// researchCompany gathers web search findings about the company and distills
// them. Search failures degrade the stage rather than failing it: the agent
// then works from the job analysis alone.
func (c *Crew) researchCompany(ctx context.Context, in Inputs, st *state) (string, error) {
	findings := c.gatherFindings(ctx, in.CompanyName)

	prompt := prompts.Format(prompts.MustGet("crew.json", "research_company"), map[string]string{
		"CompanyName":   in.CompanyName,
		"JobAnalysis":   st.jobAnalysis,
		"SearchResults": findings,
	})
	research, err := c.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", err
	}
	st.research = research
	return research, nil
}

// generateResume writes the full optimized resume in Markdown.
func (c *Crew) generateResume(ctx context.Context, in Inputs, st *state) (string, error) {
	prompt := prompts.Format(prompts.MustGet("crew.json", "generate_resume"), map[string]string{
		"JobAnalysis":  st.jobAnalysis,
		"Optimization": st.optimization,
		"Resume":       truncate(in.ResumeText, maxPromptChars),
	})
	resume, err := c.client.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	st.optimizedResume = resume
	return resume, nil
}

// generateReport writes the final application report in Markdown.
func (c *Crew) generateReport(ctx context.Context, in Inputs, st *state) (string, error) {
	prompt := prompts.Format(prompts.MustGet("crew.json", "generate_report"), map[string]string{
		"CompanyName":  in.CompanyName,
		"JobAnalysis":  st.jobAnalysis,
		"Optimization": st.optimization,
		"Research":     st.research,
	})
	return c.client.GenerateText(ctx, prompt)
}

// generateInterviewQuestions writes the interview preparation document.
func (c *Crew) generateInterviewQuestions(ctx context.Context, in Inputs, st *state) (string, error) {
	prompt := prompts.Format(prompts.MustGet("crew.json", "generate_interview_questions"), map[string]string{
		"CompanyName":     in.CompanyName,
		"JobAnalysis":     st.jobAnalysis,
		"Research":        st.research,
		"OptimizedResume": st.optimizedResume,
	})
	return c.client.GenerateText(ctx, prompt)
}

// gatherFindings runs the research queries and scrapes the top hit of each,
// collecting snippets and page text into one findings block.
func (c *Crew) gatherFindings(ctx context.Context, company string) string {
	if c.searcher == nil {
		return "(no web search tool configured)"
	}

	var sb strings.Builder
	for _, query := range search.CompanyQueries(company) {
		results, err := c.searcher.Search(ctx, query, 3)
		if err != nil {
			logStageWarning("research_company", err)
			continue
		}
		for _, r := range results {
			fmt.Fprintf(&sb, "Source: %s (%s)\n%s\n", r.Title, r.Link, r.Snippet)
		}
		if len(results) > 0 {
			if text, err := fetch.Text(ctx, results[0].Link, fetch.CompanyPageSelectors()); err == nil {
				sb.WriteString(truncate(text, 4000))
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "(web search returned no findings)"
	}
	return truncate(sb.String(), maxPromptChars)
}

// truncate cuts s to at most max bytes without splitting a UTF-8 rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
