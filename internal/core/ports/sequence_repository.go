package ports

import "context"

// SequenceRepository is the durable counter store behind order numbering.
//
// Counter rows are keyed by a time-bucket shard key (YYYYMMDD or YYYYMMDDHH)
// so that concurrent order creation on different buckets never contends.
// Mutual exclusion within one key comes from the store's atomic upsert, never
// from an application-level lock.
type SequenceRepository interface {
	// Next atomically creates the counter row for key with value 1, or
	// increments the existing row by 1, and returns the resulting value.
	// The insert-or-increment is a single store-level statement, never a
	// read-then-write pair: two concurrent calls for the same key always
	// receive distinct consecutive values.
	//
	// Next must be called inside the caller's order-creation transaction so
	// that number assignment and order insertion commit or abort together.
	Next(ctx context.Context, key string) (int, error)

	// DeleteOlderThan removes counter rows whose key sorts strictly below
	// cutoffKey. This administrative cleanup is the only sanctioned deletion
	// path for sequence rows. Returns the number of rows removed.
	DeleteOlderThan(ctx context.Context, cutoffKey string) (int64, error)
}
