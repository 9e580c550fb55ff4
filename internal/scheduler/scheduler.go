package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// schedules accept an optional leading seconds field and descriptors such as "@every 1h"
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  *log.Entry
}

// New creates a new scheduler. A run still in progress when the next one is
// due causes that next run to be skipped.
func New() *Scheduler {
	logger := log.WithField("component", "scheduler")
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
		),
		log: logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers a job under a cron schedule, e.g. "@every 1h",
// "0 */15 * * * *" or "@daily".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.WithField("job", job.Name()).Debug("Running job")

		if err := job.Run(); err != nil {
			s.log.WithError(err).WithField("job", job.Name()).Error("Job failed")
		} else {
			s.log.WithField("job", job.Name()).Debug("Job completed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, job.Name(), err)
	}

	s.log.WithFields(log.Fields{
		"schedule": schedule,
		"job":      job.Name(),
	}).Info("Job registered")
	return nil
}

// RunNow executes a job immediately, outside its schedule
func (s *Scheduler) RunNow(job Job) error {
	s.log.WithField("job", job.Name()).Info("Running job immediately")
	return job.Run()
}

// Len returns the number of registered jobs
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
