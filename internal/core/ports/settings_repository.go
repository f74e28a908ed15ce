package ports

import "context"

// SettingsRepository persists operational key-value settings, such as the
// order-number shard granularity.
type SettingsRepository interface {
	// Get retrieves the value for a settings key.
	// Returns errs.ObjectNotFoundError when the key has no row.
	Get(ctx context.Context, key string) (string, error)

	// Set stores the value for a settings key, creating the row when absent.
	Set(ctx context.Context, key string, value string) error
}
