package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler re-runs the analysis pipeline on a cron schedule. It is only
// engaged when a schedule is configured; the default mode is a single run.
type Scheduler struct {
	Cron   *cron.Cron
	Run    func()
	Logger *logrus.Logger
}

// NewScheduler creates a Scheduler around the given run function.
func NewScheduler(run func(), logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(),
		Run:    run,
		Logger: logger,
	}
}

// Register adds the analysis run under the given cron expression.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.Run); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info("scheduler stopped")
}
