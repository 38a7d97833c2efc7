// Package jobs runs the background schedule: a once-a-minute tick that
// lets the reset cycle decide whether its moment has come.
package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"slavemarket/internal/reset"
)

type Scheduler struct {
	cron  *cron.Cron
	cycle *reset.Cycle
}

// NewScheduler builds the scheduler pinned to the given timezone.
func NewScheduler(cycle *reset.Cycle, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(loc)),
		cycle: cycle,
	}
}

// Start begins the minute tick.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.cycle.Check); err != nil {
		return fmt.Errorf("register reset tick: %w", err)
	}
	s.cron.Start()
	log.Info("reset scheduler started")
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("reset scheduler stopped")
}
