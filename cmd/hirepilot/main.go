// Package main provides the entry point for the HirePilot hiring pipeline server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hirepilot",
	Short: "Hiring pipeline server and tools",
	Long:  "HirePilot scores submitted resumes against job requirements, shortlists top candidates at each stage boundary and drives the time-boxed resume/coding/interview workflow via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
