// Package types defines the shared data structures for the hiring pipeline.
package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an application. Exactly one status is
// authoritative per application at any time.
type Status string

// Application statuses across the pipeline stages.
const (
	// StatusApplied is the initial status set at intake.
	StatusApplied Status = "applied"
	// StatusShortlisted means the candidate survived the resume stage.
	StatusShortlisted Status = "shortlisted"
	// StatusNotSelected is terminal: rejected at the resume stage.
	StatusNotSelected Status = "not_selected"
	// StatusShortlistedForHR means the candidate survived the coding stage.
	StatusShortlistedForHR Status = "shortlisted_for_hr"
	// StatusNotShortlistedForHR is terminal: rejected at the coding stage.
	StatusNotShortlistedForHR Status = "not_shortlisted_for_hr"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusNotSelected,
		StatusShortlistedForHR, StatusNotShortlistedForHR:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusNotSelected || s == StatusNotShortlistedForHR
}

// Application pairs one candidate with one job. Uniquely keyed by
// (JobID, UserID). The selector only reads scores and writes statuses;
// it never creates or deletes applications.
type Application struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	UserID         uuid.UUID `json:"user_id"`
	ResumeScore    float64   `json:"resume_score"`
	TechnicalScore *float64  `json:"technical_score,omitempty"`
	Status         Status    `json:"status"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// StageTimings holds the five workflow timestamps for a job, in wall-clock
// order: resume collection window, coding round window, interview start.
type StageTimings struct {
	ResumeStart    time.Time `json:"resume_start"`
	ResumeEnd      time.Time `json:"resume_end"`
	CodingStart    time.Time `json:"coding_start"`
	CodingEnd      time.Time `json:"coding_end"`
	InterviewStart time.Time `json:"interview_start"`
}

// Validate checks that the timestamps are present and ordered.
func (t StageTimings) Validate() error {
	stamps := []struct {
		name string
		at   time.Time
	}{
		{"resume_start", t.ResumeStart},
		{"resume_end", t.ResumeEnd},
		{"coding_start", t.CodingStart},
		{"coding_end", t.CodingEnd},
		{"interview_start", t.InterviewStart},
	}
	for i, s := range stamps {
		if s.at.IsZero() {
			return fmt.Errorf("stage timing %s is required", s.name)
		}
		if i > 0 && s.at.Before(stamps[i-1].at) {
			return fmt.Errorf("stage timing %s must not precede %s", s.name, stamps[i-1].name)
		}
	}
	return nil
}

// Job holds a posting's requirement labels, description and stage timings.
// A job owns a 1:N relationship to applications.
type Job struct {
	ID             uuid.UUID    `json:"id"`
	HRID           uuid.UUID    `json:"hr_id"`
	Title          string       `json:"title"`
	Department     string       `json:"department"`
	Description    []string     `json:"description"`
	PriorityLabels []string     `json:"priority_labels,omitempty"`
	Timings        StageTimings `json:"timings"`
	PostedAt       time.Time    `json:"posted_at"`
}

// User is a candidate account, referenced by applications.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
