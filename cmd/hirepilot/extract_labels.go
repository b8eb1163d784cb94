package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martin/hirepilot/internal/labels"
)

var extractLabelsCmd = &cobra.Command{
	Use:   "extract-labels",
	Short: "Extract skill labels from a text file",
	Long:  "Scans a resume or job description text file for known skill keywords and the first experience mention, printing the label set as JSON.",
	RunE:  runExtractLabels,
}

var (
	extractLabelsInput  string
	extractLabelsOutput string
)

func init() {
	extractLabelsCmd.Flags().StringVarP(&extractLabelsInput, "in", "i", "", "Path to input text file (required)")
	extractLabelsCmd.Flags().StringVarP(&extractLabelsOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")

	if err := extractLabelsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractLabelsCmd)
}

func runExtractLabels(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(extractLabelsInput)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", extractLabelsInput, err)
	}

	extracted := labels.Extract(string(content))

	jsonOutput, err := json.MarshalIndent(map[string]any{
		"labels": extracted,
		"count":  len(extracted),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal labels to JSON: %w", err)
	}

	if extractLabelsOutput == "" {
		fmt.Println(string(jsonOutput))
		return nil
	}
	if err := os.WriteFile(extractLabelsOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write labels to output file %s: %w", extractLabelsOutput, err)
	}
	return nil
}
