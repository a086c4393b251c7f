// Package scheduler wraps robfig/cron/v3 to run a benchmark job on a
// recurring schedule (the --every flag), so a harness deployment can be
// left running rather than invoked once per cron-like wrapper script.
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a single job on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

// New builds a Scheduler using the standard 5-field cron parser.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Schedule registers job to run on expr (standard 5-field cron syntax).
// A job panic is recovered and logged rather than crashing the process,
// since robfig/cron offers no retry semantics of its own.
func (s *Scheduler) Schedule(expr string, job func()) error {
	_, err := s.cron.AddFunc(expr, func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[scheduler] recovered panic in scheduled run: %v", r)
			}
		}()
		job()
	})
	return err
}

// Start runs the scheduler's goroutine loop.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for the running job, if any, to
// finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
