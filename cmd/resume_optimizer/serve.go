package main

import (
	"github.com/spf13/cobra"

	"github.com/mohan/resume-optimizer/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveWorkspace  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and REST API server",
	Long:  `Start an HTTP server that serves the web UI and exposes REST endpoints for submitting optimization runs and retrieving their documents.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveWorkspace, "workspace", "", "Workspace root directory for uploads and archived runs")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("workspace") {
		cfg.WorkspaceRoot = serveWorkspace
	}

	r, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:         cfg.Port,
		DefaultModel: cfg.DefaultModel,
		Credentials:  credentialsFrom(cfg),
	}, r)

	return srv.Start()
}
