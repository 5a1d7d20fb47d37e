// Package scheduler runs the periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ecotracker/ecotracker-backend/internal/logging"
	"github.com/ecotracker/ecotracker-backend/internal/metrics"
	"github.com/ecotracker/ecotracker-backend/internal/service"
)

// DailyMaintenanceSpec fires at 00:05 UTC, just after the day rolls over.
const DailyMaintenanceSpec = "5 0 * * *"

// jobTimeout bounds a single run.
const jobTimeout = 5 * time.Minute

// Job is a named unit of scheduled work.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// DailyMaintenance expires broken streaks and then re-evaluates every user's
// badges. Streaks go first so badge evaluation sees the reset values.
func DailyMaintenance(activities *service.ActivityService, badges *service.BadgeService, log *zap.Logger) Job {
	return Job{
		Name: "daily_maintenance",
		Spec: DailyMaintenanceSpec,
		Run: func(ctx context.Context) error {
			expired, err := activities.ExpireStreaks(ctx)
			if err != nil {
				return fmt.Errorf("expire streaks: %w", err)
			}

			awarded, err := badges.EvaluateAll(ctx)
			if err != nil {
				return fmt.Errorf("evaluate badges: %w", err)
			}

			log.Info("daily maintenance finished",
				zap.Int64("streaks_expired", expired),
				zap.Int("badges_awarded", awarded),
			)
			return nil
		},
	}
}

// Scheduler wraps a cron runner with logging and metrics.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	metrics *metrics.Metrics
	jobs    map[string]Job
	entries map[string]cron.EntryID
}

// New registers jobs on a UTC cron runner. It fails on an invalid schedule or a
// duplicate job name.
func New(log *zap.Logger, m *metrics.Metrics, jobs ...Job) (*Scheduler, error) {
	log = log.Named("scheduler")
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(logging.NewCronLogger(log)),
			cron.WithChain(cron.Recover(logging.NewCronLogger(log)), cron.SkipIfStillRunning(logging.NewCronLogger(log))),
		),
		log:     log,
		metrics: m,
		jobs:    make(map[string]Job, len(jobs)),
		entries: make(map[string]cron.EntryID, len(jobs)),
	}

	for _, job := range jobs {
		if _, dup := s.jobs[job.Name]; dup {
			return nil, fmt.Errorf("duplicate job %q", job.Name)
		}
		id, err := s.cron.AddFunc(job.Spec, func() { _ = s.execute(context.Background(), job) })
		if err != nil {
			return nil, fmt.Errorf("invalid schedule %q for job %s: %w", job.Spec, job.Name, err)
		}
		s.jobs[job.Name] = job
		s.entries[job.Name] = id
	}

	return s, nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.jobs)))

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
	return nil
}

// RunNow executes the named job immediately, outside the schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return s.execute(ctx, job)
}

// Next reports when the named job fires after now. The zero time means the
// job is unknown.
func (s *Scheduler) Next(name string, now time.Time) time.Time {
	id, ok := s.entries[name]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Schedule.Next(now)
}

func (s *Scheduler) execute(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	elapsed := time.Since(start)

	s.metrics.JobRun(job.Name, err, elapsed)
	if err != nil {
		s.log.Error("job failed", zap.String("job", job.Name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}
	s.log.Debug("job finished", zap.String("job", job.Name), zap.Duration("elapsed", elapsed))
	return nil
}
