// Package server provides the HTTP REST API for the hiring pipeline.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/martin/hirepilot/internal/scoring"
	"github.com/martin/hirepilot/internal/selection"
	"github.com/martin/hirepilot/internal/store"
	"github.com/martin/hirepilot/internal/types"
)

// Storage is the persistence surface the handlers need. *store.Store
// implements it; tests substitute an in-memory fake.
type Storage interface {
	CreateJob(ctx context.Context, job types.Job) (uuid.UUID, error)
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	ListJobs(ctx context.Context) ([]types.Job, error)
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	CreateApplication(ctx context.Context, app types.Application, resume store.ResumeUpload) (uuid.UUID, error)
	ApplicationsForJob(ctx context.Context, jobID uuid.UUID) ([]types.Application, error)
	SetTechnicalScore(ctx context.Context, id uuid.UUID, score float64) error
	GetResume(ctx context.Context, id uuid.UUID) (*store.ResumeUpload, error)
	CreateHR(ctx context.Context, username, passwordHash string) (uuid.UUID, error)
	GetHRByUsername(ctx context.Context, username string) (*store.HRAccount, error)
}

// ResumeMatcher is the scoring collaborator for intake and evaluation.
type ResumeMatcher interface {
	MatchResume(ctx context.Context, resumeText string, requirements []string) *types.CandidateProfile
	ScoreTranscript(ctx context.Context, transcript string) types.TranscriptEvaluation
	GenerateQuestions(ctx context.Context, topics []string) []types.QuestionAnswer
}

// CandidateSelector runs the percentile selection for a job.
type CandidateSelector interface {
	SelectTopCandidates(ctx context.Context, jobID uuid.UUID, percentage float64, stage selection.Stage) []uuid.UUID
}

// Scheduler arms the stage workflow for a new job.
type Scheduler interface {
	ScheduleJob(ctx context.Context, jobID uuid.UUID, timings types.StageTimings) error
}

// Notifier emails selected candidates after a manual shortlist run.
type Notifier interface {
	NotifyCodingRound(ctx context.Context, jobID uuid.UUID, userIDs []uuid.UUID)
	NotifyInterview(ctx context.Context, jobID uuid.UUID, userIDs []uuid.UUID)
}

// Config holds server configuration.
type Config struct {
	Port                int
	JWTSecret           string
	SelectionPercentage float64
	// FuzzyThreshold overrides the scorer default when positive.
	FuzzyThreshold int
	// Embedder enables semantic blending on the lexical scoring path.
	Embedder scoring.Embedder
}

// Server is the HTTP API front end.
type Server struct {
	httpServer *http.Server
	cfg        Config

	storage   Storage
	matcher   ResumeMatcher
	selector  CandidateSelector
	scheduler Scheduler
	notifier  Notifier

	jwt      *JWTService
	validate *validator.Validate
	log      *zap.Logger

	// baseCtx outlives individual requests; stage schedules hang off it.
	baseCtx context.Context
}

// New creates a server instance.
func New(cfg Config, storage Storage, matcher ResumeMatcher, selector CandidateSelector, scheduler Scheduler, notifier Notifier, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:       cfg,
		storage:   storage,
		matcher:   matcher,
		selector:  selector,
		scheduler: scheduler,
		notifier:  notifier,
		jwt:       NewJWTService(cfg.JWTSecret),
		validate:  validator.New(),
		log:       log,
		baseCtx:   context.Background(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/hr", s.handleCreateHR)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("POST /jobs", s.requireAuth(s.handleCreateJob))
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /jobs/{id}/questions", s.requireAuth(s.handleGenerateQuestions))
	mux.HandleFunc("POST /jobs/{id}/shortlist", s.requireAuth(s.handleShortlist))
	mux.HandleFunc("GET /jobs/{id}/applications", s.requireAuth(s.handleListApplications))

	mux.HandleFunc("POST /users", s.handleCreateUser)

	mux.HandleFunc("POST /applications", s.handleSubmitApplication)
	mux.HandleFunc("GET /applications/{id}/resume", s.requireAuth(s.handleDownloadResume))
	mux.HandleFunc("POST /applications/{id}/transcript", s.requireAuth(s.handleScoreTranscript))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	s.log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
