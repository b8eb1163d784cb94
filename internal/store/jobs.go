package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/martin/hirepilot/internal/types"
)

// CreateJob inserts a job posting with its stage timings and returns the
// new id.
func (s *Store) CreateJob(ctx context.Context, job types.Job) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO jobs
		   (hr_id, title, department, description, priority_labels,
		    resume_start, resume_end, coding_start, coding_end, interview_start)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		job.HRID, job.Title, job.Department, job.Description, job.PriorityLabels,
		job.Timings.ResumeStart, job.Timings.ResumeEnd,
		job.Timings.CodingStart, job.Timings.CodingEnd, job.Timings.InterviewStart,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob returns one job, or nil when it does not exist.
func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var job types.Job
	err := s.pool.QueryRow(ctx,
		`SELECT id, hr_id, title, department, description, priority_labels,
		        resume_start, resume_end, coding_start, coding_end, interview_start, posted_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.HRID, &job.Title, &job.Department, &job.Description, &job.PriorityLabels,
		&job.Timings.ResumeStart, &job.Timings.ResumeEnd,
		&job.Timings.CodingStart, &job.Timings.CodingEnd, &job.Timings.InterviewStart,
		&job.PostedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListJobs returns all job postings, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]types.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, hr_id, title, department, description, priority_labels,
		        resume_start, resume_end, coding_start, coding_end, interview_start, posted_at
		 FROM jobs
		 ORDER BY posted_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		var job types.Job
		if err := rows.Scan(&job.ID, &job.HRID, &job.Title, &job.Department, &job.Description,
			&job.PriorityLabels,
			&job.Timings.ResumeStart, &job.Timings.ResumeEnd,
			&job.Timings.CodingStart, &job.Timings.CodingEnd, &job.Timings.InterviewStart,
			&job.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}
