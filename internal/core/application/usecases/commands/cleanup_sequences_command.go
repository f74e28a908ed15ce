package commands

import (
	"errors"
	"time"

	"pos/internal/pkg/guard"
)

var (
	ErrCleanupSequencesCommandIsNotConstructed = errors.New(
		"CleanupSequencesCommand must be created via NewCleanupSequencesCommand constructor",
	)
	ErrRetentionDaysIsInvalid = errors.New("retention days must be greater than 0")
	ErrNowIsRequired          = errors.New("reference timestamp is required")
)

// CleanupSequencesCommand represents a request to delete order-number counter
// rows older than the retention window. This administrative command is the
// only sanctioned path for removing counter rows.
type CleanupSequencesCommand struct { //nolint:recvcheck //using for validation
	retentionDays int
	now           time.Time

	guard guard.ConstructorGuard
}

// NewCleanupSequencesCommand creates a command to prune old counter rows.
// Rows whose business date is more than retentionDays before now are removed.
func NewCleanupSequencesCommand(retentionDays int, now time.Time) (CleanupSequencesCommand, error) {
	cleanupCommand := CleanupSequencesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cleanupCommand.setRetentionDays(retentionDays),
		cleanupCommand.setNow(now),
	); err != nil {
		return CleanupSequencesCommand{}, err
	}

	return cleanupCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CleanupSequencesCommand) Validate() error {
	return c.guard.Validate(ErrCleanupSequencesCommandIsNotConstructed)
}

// RetentionDays returns how many business days of counters are kept.
func (c CleanupSequencesCommand) RetentionDays() int {
	return c.retentionDays
}

// Now returns the reference timestamp the retention window is anchored to.
func (c CleanupSequencesCommand) Now() time.Time {
	return c.now
}

func (c *CleanupSequencesCommand) setRetentionDays(retentionDays int) error {
	if retentionDays <= 0 {
		return ErrRetentionDaysIsInvalid
	}

	c.retentionDays = retentionDays
	return nil
}

func (c *CleanupSequencesCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return ErrNowIsRequired
	}

	c.now = now
	return nil
}
