// Package selection ranks a job's applications by resume score and
// partitions them into a selected and a rejected cohort at a percentile
// cutoff, persisting the stage statuses for every application.
package selection

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/martin/hirepilot/internal/types"
)

// Store is the persistence collaborator the selector reads scores from and
// writes statuses to.
type Store interface {
	// ApplicationsForJob returns all applications of a job, ordered by
	// submission time.
	ApplicationsForJob(ctx context.Context, jobID uuid.UUID) ([]types.Application, error)
	// UpdateStatusBatch sets the status for every listed application and
	// returns the number of records updated.
	UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status types.Status) (int64, error)
}

// Selector performs the top-candidate selection for stage boundaries.
type Selector struct {
	store Store
	log   *zap.Logger
}

// New creates a Selector.
func New(store Store, log *zap.Logger) *Selector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{store: store, log: log}
}

// SelectTopCandidates loads every application for jobID, sorts them by
// resume score descending (ties keep submission order), selects the top
// max(1, floor(n*percentage)) and persists the stage's selected status for
// them and the rejected status for the rest. Both halves are written before
// returning, so every application ends the call with an explicit status for
// the stage.
//
// The returned slice holds the selected candidates' user ids. Faults during
// load or update are logged and surfaced as an empty result; callers cannot
// distinguish "no applicants" from "error" by the return value alone.
// Re-running on an unchanged application set produces the same assignment.
func (s *Selector) SelectTopCandidates(ctx context.Context, jobID uuid.UUID, percentage float64, stage Stage) []uuid.UUID {
	apps, err := s.store.ApplicationsForJob(ctx, jobID)
	if err != nil {
		s.log.Error("failed to load applications",
			zap.String("job_id", jobID.String()),
			zap.String("stage", stage.String()),
			zap.Error(err))
		return nil
	}
	if len(apps) == 0 {
		s.log.Warn("no applications found for job", zap.String("job_id", jobID.String()))
		return nil
	}

	// Stable sort: equal scores keep the store's submission order, so the
	// cutoff boundary is deterministic across re-runs.
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].ResumeScore > apps[j].ResumeScore
	})

	cutoff := int(math.Floor(float64(len(apps)) * percentage))
	if cutoff < 1 {
		cutoff = 1
	}
	if cutoff > len(apps) {
		cutoff = len(apps)
	}

	selectedStatus, rejectedStatus := stage.Statuses()

	selectedIDs := make([]uuid.UUID, 0, cutoff)
	selectedUsers := make([]uuid.UUID, 0, cutoff)
	for _, app := range apps[:cutoff] {
		selectedIDs = append(selectedIDs, app.ID)
		selectedUsers = append(selectedUsers, app.UserID)
	}
	rejectedIDs := make([]uuid.UUID, 0, len(apps)-cutoff)
	for _, app := range apps[cutoff:] {
		rejectedIDs = append(rejectedIDs, app.ID)
	}

	if _, err := s.store.UpdateStatusBatch(ctx, selectedIDs, selectedStatus); err != nil {
		s.log.Error("failed to update selected applications",
			zap.String("job_id", jobID.String()),
			zap.String("status", string(selectedStatus)),
			zap.Error(err))
		return nil
	}
	if len(rejectedIDs) > 0 {
		if _, err := s.store.UpdateStatusBatch(ctx, rejectedIDs, rejectedStatus); err != nil {
			s.log.Error("failed to update rejected applications",
				zap.String("job_id", jobID.String()),
				zap.String("status", string(rejectedStatus)),
				zap.Error(err))
			return nil
		}
	}

	s.log.Info("selected top candidates",
		zap.String("job_id", jobID.String()),
		zap.String("stage", stage.String()),
		zap.Int("selected", len(selectedIDs)),
		zap.Int("rejected", len(rejectedIDs)),
		zap.Int("total", len(apps)))

	return selectedUsers
}
