package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiredTokenDeleter is the repository surface the cleanup job needs.
type ExpiredTokenDeleter interface {
	DeleteExpired(before time.Time) (int64, error)
}

// TokenCleanupJob purges expired refresh/verification tokens on a schedule.
type TokenCleanupJob struct {
	tokens   ExpiredTokenDeleter
	schedule string
	logger   *zap.Logger
	cron     *cron.Cron
}

func NewTokenCleanupJob(tokens ExpiredTokenDeleter, schedule string, logger *zap.Logger) *TokenCleanupJob {
	return &TokenCleanupJob{
		tokens:   tokens,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start begins the scheduled cleanup.
func (job *TokenCleanupJob) Start() error {
	_, err := job.cron.AddFunc(job.schedule, func() {
		if err := job.Run(); err != nil {
			job.logger.Error("token cleanup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule token cleanup: %w", err)
	}

	job.cron.Start()
	job.logger.Info("token cleanup scheduled", zap.String("schedule", job.schedule))
	return nil
}

// Stop stops the scheduler.
func (job *TokenCleanupJob) Stop() {
	if job.cron != nil {
		job.cron.Stop()
	}
}

// Run performs a single cleanup pass.
func (job *TokenCleanupJob) Run() error {
	deleted, err := job.tokens.DeleteExpired(time.Now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		job.logger.Info("purged expired tokens", zap.Int64("count", deleted))
	}
	return nil
}
