package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/martin/hirepilot/internal/labels"
	"github.com/martin/hirepilot/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description offline",
	Long:  "Extracts labels from a resume text file and a job description JSON file, then prints the weighted similarity score without touching the database or any model API.",
	RunE:  runScore,
}

var (
	scoreResume string
	scoreJob    string
	scoreOutput string
)

// scoreJobFile is the job description input for offline scoring.
type scoreJobFile struct {
	Description    []string `json:"description"`
	PriorityLabels []string `json:"priority_labels"`
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume text file (required)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job description JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")

	if err := scoreCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	resumeContent, err := os.ReadFile(scoreResume)
	if err != nil {
		return fmt.Errorf("failed to read resume file %s: %w", scoreResume, err)
	}

	jobContent, err := os.ReadFile(scoreJob)
	if err != nil {
		return fmt.Errorf("failed to read job file %s: %w", scoreJob, err)
	}

	var job scoreJobFile
	if err := json.Unmarshal(jobContent, &job); err != nil {
		return fmt.Errorf("failed to unmarshal job JSON: %w", err)
	}
	if len(job.Description) == 0 {
		return fmt.Errorf("job file %s has no description entries", scoreJob)
	}

	jobLabels := labels.Extract(strings.Join(job.Description, " "))
	candLabels := labels.Extract(string(resumeContent))

	result := scoring.Score(context.Background(), jobLabels, candLabels, scoring.Options{
		PriorityLabels: job.PriorityLabels,
	})

	jsonOutput, err := json.MarshalIndent(map[string]any{
		"score":   result.Score,
		"matched": result.Matched,
		"missing": result.Missing,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score to JSON: %w", err)
	}

	if scoreOutput == "" {
		fmt.Println(string(jsonOutput))
		return nil
	}
	if err := os.WriteFile(scoreOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write score to output file %s: %w", scoreOutput, err)
	}
	return nil
}
