package scheduler

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
)

// Job is one periodic refresh task. Run must be safe to call repeatedly
// but is never invoked concurrently with itself.
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Run      func(ctx context.Context) error

	authFailed atomic.Bool
}

// Scheduler periodically runs refresh jobs for the configured
// coordinators.
type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      []*Job
}

// New creates a new Scheduler in the given timezone.
func New(tz *time.Location, jobs []*Job) *Scheduler {
	if tz == nil {
		tz = time.UTC
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(tz),
		jobs:      jobs,
	}
}

// Start schedules every job and starts the underlying scheduler. Jobs
// run in singleton mode: a tick that arrives while the previous run of
// the same job is still in flight is skipped, never overlapped.
func (s *Scheduler) Start() error {
	if len(s.jobs) == 0 {
		log.Println("scheduler: no jobs configured; nothing to schedule")
		return nil
	}

	for _, job := range s.jobs {
		job := job
		_, err := s.scheduler.Every(jobInterval(job.Interval)).SingletonMode().Do(func() {
			s.runJob(job)
		})
		if err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

// jobInterval passes configured intervals through exactly, including
// sub-minute ones; only an unset interval gets the default.
func jobInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Minute
	}
	return d
}

func (s *Scheduler) runJob(job *Job) {
	if job.authFailed.Load() {
		log.Printf("scheduler: %s suspended, credentials need reconfiguration", job.Name)
		return
	}

	timeout := job.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	switch {
	case err == nil:
		log.Printf("scheduler: %s completed in %s", job.Name, time.Since(start).Round(time.Millisecond))
	case errors.Is(err, euskalmet.ErrAuthFailed):
		// Permanent: stop polling until the configuration changes.
		job.authFailed.Store(true)
		log.Printf("ERROR: scheduler: %s failed authentication, suspending until reconfigured: %v", job.Name, err)
	default:
		// Temporary: the next tick retries.
		log.Printf("scheduler: %s failed, retrying next tick: %v", job.Name, err)
	}
}

// RunAllOnce executes every job once, synchronously. Used at startup so
// the HTTP surface has data before the first scheduled tick.
func (s *Scheduler) RunAllOnce() {
	for _, job := range s.jobs {
		s.runJob(job)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
