package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martin/hirepilot/internal/config"
	"github.com/martin/hirepilot/internal/llm"
	"github.com/martin/hirepilot/internal/logger"
	"github.com/martin/hirepilot/internal/matcher"
	"github.com/martin/hirepilot/internal/notify"
	"github.com/martin/hirepilot/internal/scoring"
	"github.com/martin/hirepilot/internal/selection"
	"github.com/martin/hirepilot/internal/server"
	"github.com/martin/hirepilot/internal/store"
	"github.com/martin/hirepilot/internal/workflow"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for job postings, resume intake, candidate selection and the stage workflow.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := llm.NewGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	match := matcher.New(client, log)
	selector := selection.New(db, log)

	var notifier *notify.Notifier
	if cfg.SMTP.Host != "" {
		mailer, err := notify.NewSMTPMailer(cfg.SMTP)
		if err != nil {
			return err
		}
		notifier = notify.New(mailer, db, log)
	} else {
		log.Warn("SMTP not configured, candidate emails disabled")
		notifier = notify.New(notify.NopMailer{}, db, log)
	}

	driver := workflow.New(selector, notifier, log,
		workflow.WithSelectionPercentage(cfg.SelectionPercentage))

	var embedder scoring.Embedder
	if cfg.UseSemantic {
		embedder = client
	}

	srv := server.New(server.Config{
		Port:                cfg.Port,
		JWTSecret:           cfg.JWTSecret,
		SelectionPercentage: cfg.SelectionPercentage,
		FuzzyThreshold:      cfg.FuzzyThreshold,
		Embedder:            embedder,
	}, db, match, selector, driver, notifier, log)

	return srv.Start()
}
