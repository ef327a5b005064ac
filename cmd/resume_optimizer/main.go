// Package main provides the entry point for the Resume Optimizer CLI and
// HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_optimizer",
	Short: "Resume Optimizer",
	Long:  "Resume Optimizer tailors a resume to a specific job posting: it analyzes the posting, researches the hiring company, and produces an optimized resume, an application report and interview preparation questions, archived as Markdown and PDF.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
