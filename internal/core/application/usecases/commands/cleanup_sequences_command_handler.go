package commands

import (
	"context"

	"pos/internal/core/domain/model/kernel"
)

// CleanupSequencesCommandHandler prunes order-number counter rows that fell
// out of the retention window.
//
// The cutoff is a daily key (YYYYMMDD), and hourly shard keys of the cutoff
// date sort above it, so both daily and hourly rows age out together: a row
// is removed exactly when its business date is older than the window.
type CleanupSequencesCommandHandler struct {
	uowFactory SequenceUoWFactory
}

// NewCleanupSequencesCommandHandler creates a handler for counter cleanup.
func NewCleanupSequencesCommandHandler(uowFactory SequenceUoWFactory) CleanupSequencesCommandHandler {
	return CleanupSequencesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cleanup command and returns how many rows were removed.
func (h *CleanupSequencesCommandHandler) Handle(ctx context.Context, cmd CleanupSequencesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := cmd.Now().AddDate(0, 0, -cmd.RetentionDays())
	cutoffKey := kernel.BusinessDateOf(cutoff).Key()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.SequenceRepository().DeleteOlderThan(ctx, cutoffKey)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
