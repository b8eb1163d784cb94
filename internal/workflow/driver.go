// Package workflow sequences the five pipeline stages per job and invokes
// the selector and notifier at stage boundaries.
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/martin/hirepilot/internal/selection"
	"github.com/martin/hirepilot/internal/types"
)

// DefaultSelectionPercentage is the percentile cutoff used at stage
// boundaries when none is configured.
const DefaultSelectionPercentage = 0.2

// Clock abstracts wall-clock time so stage firing is testable.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Selector partitions a job's cohort at a stage boundary.
type Selector interface {
	SelectTopCandidates(ctx context.Context, jobID uuid.UUID, percentage float64, stage selection.Stage) []uuid.UUID
}

// Notifier informs selected candidates about their stage transition.
type Notifier interface {
	NotifyCodingRound(ctx context.Context, jobID uuid.UUID, userIDs []uuid.UUID)
	NotifyInterview(ctx context.Context, jobID uuid.UUID, userIDs []uuid.UUID)
}

// Driver schedules stage callbacks for jobs. It is an explicitly
// constructed service: all collaborators are injected and one instance is
// held for the process lifetime.
type Driver struct {
	selector   Selector
	notifier   Notifier
	log        *zap.Logger
	clock      Clock
	percentage float64

	wg sync.WaitGroup
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the wall clock, for tests.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithSelectionPercentage sets the percentile cutoff applied at stage
// boundaries.
func WithSelectionPercentage(pct float64) Option {
	return func(d *Driver) { d.percentage = pct }
}

// New creates a Driver.
func New(selector Selector, notifier Notifier, log *zap.Logger, opts ...Option) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Driver{
		selector:   selector,
		notifier:   notifier,
		log:        log,
		clock:      realClock{},
		percentage: DefaultSelectionPercentage,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// stage is one scheduled callback.
type stage struct {
	name string
	at   time.Time
	run  func(ctx context.Context)
}

// ScheduleJob arms the five stage callbacks for a job. Each fires exactly
// once, in wall-clock order; timestamps already in the past fire
// immediately. Stage callbacks for different jobs run concurrently with no
// cross-job ordering. A failing stage is isolated and logged; the remaining
// stages of the job still fire.
func (d *Driver) ScheduleJob(ctx context.Context, jobID uuid.UUID, timings types.StageTimings) error {
	if err := timings.Validate(); err != nil {
		return err
	}

	stages := []stage{
		{"resume_start", timings.ResumeStart, func(context.Context) {
			d.log.Info("resume collection started", zap.String("job_id", jobID.String()))
		}},
		{"resume_end", timings.ResumeEnd, func(ctx context.Context) {
			d.log.Info("resume collection ended, selecting candidates", zap.String("job_id", jobID.String()))
			selected := d.selector.SelectTopCandidates(ctx, jobID, d.percentage, selection.StageResume)
			d.notifier.NotifyCodingRound(ctx, jobID, selected)
		}},
		{"coding_start", timings.CodingStart, func(context.Context) {
			d.log.Info("coding round started", zap.String("job_id", jobID.String()))
		}},
		{"coding_end", timings.CodingEnd, func(ctx context.Context) {
			d.log.Info("coding round ended, shortlisting for HR", zap.String("job_id", jobID.String()))
			selected := d.selector.SelectTopCandidates(ctx, jobID, d.percentage, selection.StageHR)
			d.notifier.NotifyInterview(ctx, jobID, selected)
		}},
		{"interview_start", timings.InterviewStart, func(context.Context) {
			d.log.Info("interview round started", zap.String("job_id", jobID.String()))
		}},
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for _, s := range stages {
			if delay := s.at.Sub(d.clock.Now()); delay > 0 {
				select {
				case <-ctx.Done():
					d.log.Warn("job schedule cancelled",
						zap.String("job_id", jobID.String()),
						zap.String("pending_stage", s.name))
					return
				case <-d.clock.After(delay):
				}
			}
			d.runStage(ctx, jobID, s)
		}
	}()

	return nil
}

// runStage executes one stage callback, containing panics so a failing
// stage never aborts the job's remaining stages.
func (d *Driver) runStage(ctx context.Context, jobID uuid.UUID, s stage) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("stage callback failed",
				zap.String("job_id", jobID.String()),
				zap.String("stage", s.name),
				zap.Any("panic", r))
		}
	}()
	s.run(ctx)
}

// Wait blocks until all scheduled jobs have run their stages or been
// cancelled. Intended for shutdown and tests.
func (d *Driver) Wait() {
	d.wg.Wait()
}
