package jobs

import (
	"context"
	"log/slog"
	"time"

	"pos/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// sequenceCleanupSpec fires at 06:30, after the business-day cutoff, so the
// counters being pruned can no longer be incremented by intake.
const sequenceCleanupSpec = "0 30 6 * * *"

// SequenceCleanupJob prunes order-number counter rows past the retention
// window once a day.
type SequenceCleanupJob struct {
	handler       commands.CleanupSequencesCommandHandler
	retentionDays int
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewSequenceCleanupJob creates a job that prunes counters daily, keeping
// retentionDays business days of history.
func NewSequenceCleanupJob(
	handler commands.CleanupSequencesCommandHandler,
	retentionDays int,
	logger *slog.Logger,
) *SequenceCleanupJob {
	return &SequenceCleanupJob{
		handler:       handler,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "sequence_cleanup_job"),
	}
}

// Start schedules the cleanup to run daily after the cutoff.
func (j *SequenceCleanupJob) Start() error {
	_, err := j.cron.AddFunc(sequenceCleanupSpec, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCleanupSequencesCommand(j.retentionDays, time.Now())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Sequence cleanup job misconfigured", "error", cmdErr)
			return
		}

		deleted, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Sequence cleanup job failed", "error", handleErr)
			return
		}

		j.logger.InfoContext(ctx, "Sequence cleanup completed", "deleted_rows", deleted)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sequence cleanup job started (running daily at 06:30)")
	return nil
}

// Stop stops the sequence cleanup job.
func (j *SequenceCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Sequence cleanup job stopped")
}
