package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohan/resume-optimizer/internal/catalog"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the supported models",
	Run: func(_ *cobra.Command, _ []string) {
		def := catalog.Default()
		for _, opt := range catalog.Options() {
			marker := " "
			if opt.ID == def.ID {
				marker = "*"
			}
			fmt.Printf("%s %-20s %s\n", marker, opt.ID, opt.DisplayName)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

// defaultModelID returns the catalog default's stable identifier.
func defaultModelID() string {
	return catalog.Default().ID
}
