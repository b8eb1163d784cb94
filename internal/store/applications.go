package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/martin/hirepilot/internal/types"
)

// ResumeUpload carries the stored copy of a submitted resume.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	Text        string
	Detail      []byte // schema-validated profile JSON
}

// CreateApplication inserts one application with its resume payload and
// returns the new id. The (job_id, user_id) pair is unique; resubmission
// fails rather than silently duplicating.
func (s *Store) CreateApplication(ctx context.Context, app types.Application, resume ResumeUpload) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO applications
		   (job_id, user_id, resume_score, status, resume_filename, resume_content_type, resume_file, resume_text, resume_detail)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		app.JobID, app.UserID, app.ResumeScore, app.Status,
		resume.Filename, resume.ContentType, resume.Data, resume.Text, resume.Detail,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// ApplicationsForJob returns every application of a job ordered by
// submission time, so stable sorting downstream preserves arrival order for
// equal scores.
func (s *Store) ApplicationsForJob(ctx context.Context, jobID uuid.UUID) ([]types.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, user_id, resume_score, technical_score, status, submitted_at
		 FROM applications
		 WHERE job_id = $1
		 ORDER BY submitted_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		var app types.Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.UserID, &app.ResumeScore,
			&app.TechnicalScore, &app.Status, &app.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}
	return apps, nil
}

// UpdateStatusBatch sets the status for every listed application id in one
// statement and returns the number of records updated.
func (s *Store) UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status types.Status) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = ANY($2)`,
		status, ids,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update application statuses: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SetTechnicalScore records the transcript evaluation score for an
// application.
func (s *Store) SetTechnicalScore(ctx context.Context, id uuid.UUID, score float64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE applications SET technical_score = $1 WHERE id = $2`,
		score, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set technical score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s not found", id)
	}
	return nil
}

// GetResume returns the stored resume payload for an application, or nil
// when the application does not exist.
func (s *Store) GetResume(ctx context.Context, id uuid.UUID) (*ResumeUpload, error) {
	var upload ResumeUpload
	err := s.pool.QueryRow(ctx,
		`SELECT resume_filename, resume_content_type, resume_file, resume_text
		 FROM applications WHERE id = $1`,
		id,
	).Scan(&upload.Filename, &upload.ContentType, &upload.Data, &upload.Text)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &upload, nil
}
