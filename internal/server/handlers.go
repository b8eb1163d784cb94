package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/martin/hirepilot/internal/ingestion"
	"github.com/martin/hirepilot/internal/labels"
	"github.com/martin/hirepilot/internal/scoring"
	"github.com/martin/hirepilot/internal/selection"
	"github.com/martin/hirepilot/internal/store"
	"github.com/martin/hirepilot/internal/types"
)

// maxResumeSize bounds the multipart upload at intake.
const maxResumeSize = 10 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------------------------------------------------------------------
// Auth Handlers
// ---------------------------------------------------------------------

type CreateHRRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

func (s *Server) handleCreateHR(w http.ResponseWriter, r *http.Request) {
	var req CreateHRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.storage.GetHRByUsername(r.Context(), req.Username)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing != nil {
		takenErr := &ErrUsernameTaken{Username: req.Username}
		s.errorResponse(w, HTTPStatus(takenErr), takenErr.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	id, err := s.storage.CreateHR(r.Context(), req.Username, string(hash))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := s.storage.GetHRByUsername(r.Context(), req.Username)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	credErr := &ErrInvalidCredentials{}
	if account == nil {
		s.errorResponse(w, HTTPStatus(credErr), credErr.Error())
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.errorResponse(w, HTTPStatus(credErr), credErr.Error())
		return
	}

	token, err := s.jwt.GenerateToken(account.ID, account.Username)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}

// ---------------------------------------------------------------------
// Job Handlers
// ---------------------------------------------------------------------

type CreateJobRequest struct {
	Title          string             `json:"title" validate:"required"`
	Department     string             `json:"department"`
	Description    []string           `json:"description" validate:"required,min=1"`
	PriorityLabels []string           `json:"priority_labels"`
	Timings        types.StageTimings `json:"timings"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	hrID, err := hrIDFromRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Timings.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job := types.Job{
		HRID:           hrID,
		Title:          req.Title,
		Department:     req.Department,
		Description:    req.Description,
		PriorityLabels: req.PriorityLabels,
		Timings:        req.Timings,
	}
	id, err := s.storage.CreateJob(r.Context(), job)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// The schedule outlives the request; stage timers run on the base
	// context, not r.Context().
	if err := s.scheduler.ScheduleJob(s.baseCtx, id, req.Timings); err != nil {
		s.log.Error("scheduling job stages", zap.String("job_id", id.String()), zap.Error(err))
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.storage.ListJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.storage.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		notFound := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.storage.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	topics := labels.Extract(strings.Join(job.Description, " "))
	questions := s.matcher.GenerateQuestions(r.Context(), topics)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"questions": questions,
		"count":     len(questions),
	})
}

type ShortlistRequest struct {
	Stage      string  `json:"stage" validate:"required,oneof=resume hr"`
	Percentage float64 `json:"percentage" validate:"omitempty,gt=0,lte=1"`
}

// handleShortlist runs a selection round on demand, outside the scheduled
// stage workflow.
func (s *Server) handleShortlist(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req ShortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	pct := req.Percentage
	if pct == 0 {
		pct = s.cfg.SelectionPercentage
	}

	var stage selection.Stage
	switch req.Stage {
	case "resume":
		stage = selection.StageResume
	case "hr":
		stage = selection.StageHR
	}

	selected := s.selector.SelectTopCandidates(r.Context(), jobID, pct, stage)
	switch stage {
	case selection.StageResume:
		s.notifier.NotifyCodingRound(r.Context(), jobID, selected)
	case selection.StageHR:
		s.notifier.NotifyInterview(r.Context(), jobID, selected)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"selected": selected,
		"count":    len(selected),
	})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	apps, err := s.storage.ApplicationsForJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": apps,
		"count":        len(apps),
	})
}

// ---------------------------------------------------------------------
// User Handlers
// ---------------------------------------------------------------------

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.storage.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	jobID, err := uuid.Parse(r.FormValue("job_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}
	userID, err := uuid.Parse(r.FormValue("user_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	job, err := s.storage.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read resume file")
		return
	}

	contentType := resumeContentType(header.Filename, header.Header.Get("Content-Type"))

	// Extraction failure is tolerated: the application enters the pipeline
	// with a fallback profile and a zero score.
	text, err := ingestion.ExtractText(data, contentType)
	if err != nil {
		s.log.Warn("resume text extraction failed",
			zap.String("filename", header.Filename), zap.Error(err))
		text = ""
	}

	profile := s.matcher.MatchResume(r.Context(), text, job.Description)

	score := profile.ResumeMatch
	if profile.Error != "" && text != "" {
		// Lexical fallback when the model path degraded but we still have
		// resume text to score.
		jobLabels := labels.Extract(strings.Join(job.Description, " "))
		candLabels := labels.Extract(text)
		result := scoring.Score(r.Context(), jobLabels, candLabels, scoring.Options{
			PriorityLabels: job.PriorityLabels,
			FuzzyThreshold: s.cfg.FuzzyThreshold,
			Embedder:       s.cfg.Embedder,
		})
		score = result.Score * 100
		s.log.Info("scored resume lexically",
			zap.String("job_id", jobID.String()),
			zap.Float64("score", score))
	}

	detail, err := json.Marshal(profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to encode profile")
		return
	}

	app := types.Application{
		JobID:       jobID,
		UserID:      userID,
		ResumeScore: score,
		Status:      types.StatusApplied,
	}
	upload := store.ResumeUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
		Text:        text,
		Detail:      detail,
	}

	id, err := s.storage.CreateApplication(r.Context(), app, upload)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":           id.String(),
		"resume_score": score,
	})
}

// resumeContentType prefers the declared content type and falls back to the
// filename extension.
func resumeContentType(filename, declared string) string {
	if declared == ingestion.ContentTypePDF || declared == ingestion.ContentTypeText {
		return declared
	}
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return ingestion.ContentTypePDF
	}
	return ingestion.ContentTypeText
}

func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	resume, err := s.storage.GetResume(r.Context(), appID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	w.Header().Set("Content-Type", resume.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+resume.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resume.Data); err != nil {
		s.log.Error("writing resume body", zap.Error(err))
	}
}

type ScoreTranscriptRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

func (s *Server) handleScoreTranscript(w http.ResponseWriter, r *http.Request) {
	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req ScoreTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	eval := s.matcher.ScoreTranscript(r.Context(), req.Transcript)

	if err := s.storage.SetTechnicalScore(r.Context(), appID, eval.Score); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, eval)
}
