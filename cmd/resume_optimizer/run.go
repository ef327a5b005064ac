package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mohan/resume-optimizer/internal/crew"
	"github.com/mohan/resume-optimizer/internal/runner"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run one optimization end-to-end from the command line",
	Long: `Runs the full optimization for one resume and job posting: job analysis, resume optimization, company research, and generation of the optimized resume, application report and interview questions, archived as Markdown and PDF.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runOptimizeCmd,
}

var (
	runConfigPath string
	runResume     string
	runCompany    string
	runJobURL     string
	runModel      string
	runWorkspace  string
	runAPIKey     string
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to the resume file (PDF, Markdown or plain text)")
	runCommand.Flags().StringVarP(&runCompany, "company", "c", "", "Name of the hiring company")
	runCommand.Flags().StringVarP(&runJobURL, "job-url", "j", "", "URL of the job posting")
	runCommand.Flags().StringVarP(&runModel, "model", "m", "", "Model catalog ID (see the models command)")
	runCommand.Flags().StringVar(&runWorkspace, "workspace", "", "Workspace root directory for uploads and archived runs")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runOptimizeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workspace") {
		cfg.WorkspaceRoot = runWorkspace
	}
	if cmd.Flags().Changed("api-key") {
		cfg.GeminiAPIKey = runAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.DefaultModel = runModel
	}

	if runResume == "" {
		return fmt.Errorf("--resume is required")
	}
	resumeData, err := os.ReadFile(runResume)
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", runResume, err)
	}

	r, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	req := runner.Request{
		ModelID:     cfg.DefaultModel,
		ResumeName:  filepath.Base(runResume),
		ResumeData:  resumeData,
		CompanyName: runCompany,
		JobURL:      runJobURL,
		Credentials: credentialsFrom(cfg),
	}
	if req.ModelID == "" {
		req.ModelID = defaultModelID()
	}

	res, err := r.Run(context.Background(), req, func(e crew.ProgressEvent) {
		fmt.Printf("[%d/%d] %s\n", e.Index, e.Total, e.Stage)
	})
	if err != nil {
		return err
	}

	fmt.Println(res.Status)
	for _, doc := range res.Documents {
		if doc.PDFPath != "" {
			fmt.Printf("  %s (PDF: %s)\n", doc.MarkdownPath, filepath.Base(doc.PDFPath))
		} else {
			fmt.Printf("  %s\n", doc.MarkdownPath)
		}
	}
	return nil
}
