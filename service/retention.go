package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"emi-planner/repository"
)

// RetentionJob deletes history records older than its maximum age.
type RetentionJob struct {
	repo   repository.LoanRepository
	maxAge time.Duration
	log    *logrus.Logger
	now    func() time.Time
}

func NewRetentionJob(repo repository.LoanRepository, days int, log *logrus.Logger) *RetentionJob {
	return &RetentionJob{
		repo:   repo,
		maxAge: time.Duration(days) * 24 * time.Hour,
		log:    log,
		now:    time.Now,
	}
}

// Run implements cron.Job.
func (j *RetentionJob) Run() {
	cutoff := j.now().UTC().Add(-j.maxAge)
	removed, err := j.repo.DeleteBefore(cutoff)
	if err != nil {
		j.log.WithError(err).Error("history retention failed")
		return
	}
	j.log.WithFields(logrus.Fields{
		"removed": removed,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("history pruned")
}

// StartRetention schedules the job and starts the scheduler. Stop the
// returned scheduler on shutdown.
func StartRetention(schedule string, job *RetentionJob) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
