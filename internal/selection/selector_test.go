package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/hirepilot/internal/types"
)

// fakeStore is an in-memory Store recording status writes.
type fakeStore struct {
	apps      []types.Application
	loadErr   error
	updateErr error

	statuses map[uuid.UUID]types.Status
	batches  []int
}

func newFakeStore(apps []types.Application) *fakeStore {
	return &fakeStore{apps: apps, statuses: make(map[uuid.UUID]types.Status)}
}

func (f *fakeStore) ApplicationsForJob(context.Context, uuid.UUID) ([]types.Application, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]types.Application, len(f.apps))
	copy(out, f.apps)
	return out, nil
}

func (f *fakeStore) UpdateStatusBatch(_ context.Context, ids []uuid.UUID, status types.Status) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.batches = append(f.batches, len(ids))
	for _, id := range ids {
		f.statuses[id] = status
	}
	return int64(len(ids)), nil
}

func makeApps(scores ...float64) []types.Application {
	jobID := uuid.New()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	apps := make([]types.Application, len(scores))
	for i, score := range scores {
		apps[i] = types.Application{
			ID:          uuid.New(),
			JobID:       jobID,
			UserID:      uuid.New(),
			ResumeScore: score,
			Status:      types.StatusApplied,
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return apps
}

func TestSelectTopCandidates_HalfSelected(t *testing.T) {
	apps := makeApps(90, 70, 50, 30)
	store := newFakeStore(apps)
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.5, StageResume)

	require.Len(t, selected, 2)
	assert.Equal(t, []uuid.UUID{apps[0].UserID, apps[1].UserID}, selected)

	assert.Equal(t, types.StatusShortlisted, store.statuses[apps[0].ID])
	assert.Equal(t, types.StatusShortlisted, store.statuses[apps[1].ID])
	assert.Equal(t, types.StatusNotSelected, store.statuses[apps[2].ID])
	assert.Equal(t, types.StatusNotSelected, store.statuses[apps[3].ID])
}

func TestSelectTopCandidates_EveryApplicationGetsStatus(t *testing.T) {
	apps := makeApps(10, 20, 30, 40, 50, 60, 70)
	store := newFakeStore(apps)
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.3, StageResume)

	// floor(7*0.3) = 2
	assert.Len(t, selected, 2)
	assert.Len(t, store.statuses, len(apps))

	count := map[types.Status]int{}
	for _, status := range store.statuses {
		count[status]++
	}
	assert.Equal(t, 2, count[types.StatusShortlisted])
	assert.Equal(t, 5, count[types.StatusNotSelected])
}

func TestSelectTopCandidates_FloorGuaranteesOne(t *testing.T) {
	apps := makeApps(10)
	store := newFakeStore(apps)
	s := New(store, nil)

	// cutoff = max(1, floor(1*0.1)=0) = 1
	selected := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.1, StageResume)

	require.Len(t, selected, 1)
	assert.Equal(t, apps[0].UserID, selected[0])
	assert.Equal(t, types.StatusShortlisted, store.statuses[apps[0].ID])
}

func TestSelectTopCandidates_SortsByScoreDescending(t *testing.T) {
	apps := makeApps(30, 90, 50, 70)
	store := newFakeStore(apps)
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.5, StageResume)

	require.Len(t, selected, 2)
	assert.Equal(t, apps[1].UserID, selected[0]) // 90
	assert.Equal(t, apps[3].UserID, selected[1]) // 70
}

func TestSelectTopCandidates_TiesKeepSubmissionOrder(t *testing.T) {
	apps := makeApps(50, 50, 50)
	store := newFakeStore(apps)
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.34, StageResume)

	// The earliest submission wins the boundary slot.
	require.Len(t, selected, 1)
	assert.Equal(t, apps[0].UserID, selected[0])
}

func TestSelectTopCandidates_BoundaryScoreInvariant(t *testing.T) {
	apps := makeApps(15, 80, 42, 42, 99, 7)
	store := newFakeStore(apps)
	s := New(store, nil)

	s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.5, StageResume)

	minSelected := 101.0
	maxRejected := -1.0
	for _, app := range apps {
		switch store.statuses[app.ID] {
		case types.StatusShortlisted:
			if app.ResumeScore < minSelected {
				minSelected = app.ResumeScore
			}
		case types.StatusNotSelected:
			if app.ResumeScore > maxRejected {
				maxRejected = app.ResumeScore
			}
		}
	}
	assert.GreaterOrEqual(t, minSelected, maxRejected)
}

func TestSelectTopCandidates_FullPercentage(t *testing.T) {
	apps := makeApps(10, 20, 30)
	store := newFakeStore(apps)
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), apps[0].JobID, 1.0, StageResume)

	assert.Len(t, selected, 3)
	for _, app := range apps {
		assert.Equal(t, types.StatusShortlisted, store.statuses[app.ID])
	}
}

func TestSelectTopCandidates_EmptyJob(t *testing.T) {
	store := newFakeStore(nil)
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), uuid.New(), 0.5, StageResume)

	assert.Empty(t, selected)
	assert.Empty(t, store.statuses)
	assert.Empty(t, store.batches)
}

func TestSelectTopCandidates_HRStageStatuses(t *testing.T) {
	apps := makeApps(90, 10)
	store := newFakeStore(apps)
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.5, StageHR)

	require.Len(t, selected, 1)
	assert.Equal(t, types.StatusShortlistedForHR, store.statuses[apps[0].ID])
	assert.Equal(t, types.StatusNotShortlistedForHR, store.statuses[apps[1].ID])
}

func TestSelectTopCandidates_LoadErrorReturnsEmpty(t *testing.T) {
	store := newFakeStore(makeApps(50))
	store.loadErr = errors.New("store unavailable")
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), uuid.New(), 0.5, StageResume)

	assert.Empty(t, selected)
}

func TestSelectTopCandidates_UpdateErrorReturnsEmpty(t *testing.T) {
	apps := makeApps(50, 30)
	store := newFakeStore(apps)
	store.updateErr = errors.New("write refused")
	s := New(store, nil)

	selected := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.5, StageResume)

	assert.Empty(t, selected)
}

func TestSelectTopCandidates_IdempotentOnFrozenPool(t *testing.T) {
	apps := makeApps(90, 70, 50, 30)
	store := newFakeStore(apps)
	s := New(store, nil)

	first := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.5, StageResume)
	firstStatuses := map[uuid.UUID]types.Status{}
	for id, status := range store.statuses {
		firstStatuses[id] = status
	}

	second := s.SelectTopCandidates(context.Background(), apps[0].JobID, 0.5, StageResume)

	assert.Equal(t, first, second)
	assert.Equal(t, firstStatuses, store.statuses)
}

func TestStageStatuses(t *testing.T) {
	selected, rejected := StageResume.Statuses()
	assert.Equal(t, types.StatusShortlisted, selected)
	assert.Equal(t, types.StatusNotSelected, rejected)

	selected, rejected = StageHR.Statuses()
	assert.Equal(t, types.StatusShortlistedForHR, selected)
	assert.Equal(t, types.StatusNotShortlistedForHR, rejected)

	assert.Equal(t, "resume", StageResume.String())
	assert.Equal(t, "hr", StageHR.String())
}
