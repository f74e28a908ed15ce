package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/ports"
)

// ErrNumberGenerationFailed is returned when the sequence upsert failed even
// after the fallback retry. It is fatal to the enclosing order-creation
// transaction: no order is ever committed without a number.
var ErrNumberGenerationFailed = errors.New("order number generation failed")

// Granularity selects how the order-number counter keyspace is sharded.
type Granularity int

const (
	// GranularityUnknown represents an invalid or undefined granularity.
	GranularityUnknown Granularity = iota

	// GranularityDaily shards counters per business date (key YYYYMMDD).
	// All orders of one business day contend on a single counter row.
	GranularityDaily

	// GranularityHourly shards counters per business date and original hour
	// of day (key YYYYMMDDHH), spreading contention across 24 rows per
	// business day. Counter values then restart each hour, so the full
	// sequence key is needed to disambiguate rows.
	GranularityHourly
)

// Validate checks if the Granularity value is valid.
func (g Granularity) Validate() error {
	if g != GranularityDaily && g != GranularityHourly {
		return fmt.Errorf("%d is not a valid numbering granularity", g)
	}
	return nil
}

// String returns the human-readable name of the granularity.
func (g Granularity) String() string {
	switch g {
	case GranularityDaily:
		return "daily"
	case GranularityHourly:
		return "hourly"
	default:
		return "unknown"
	}
}

// GranularityFromString parses a granularity name as stored in settings.
func GranularityFromString(name string) (Granularity, error) {
	switch name {
	case "daily":
		return GranularityDaily, nil
	case "hourly":
		return GranularityHourly, nil
	default:
		return GranularityUnknown, fmt.Errorf("%q is not a valid numbering granularity", name)
	}
}

// OrderNumberGenerator is a domain service that produces order numbers which
// are sequential and unique within a counter shard, safe under arbitrary
// concurrent callers, without serializing all order creation through one lock.
//
// The generator derives the shard key from the order timestamp (business-date
// cutoff applied to the date component only) and delegates the increment to
// the store's atomic upsert. It never opens its own transaction: the caller
// passes a SequenceRepository bound to the order-creation transaction, so
// number assignment and order insertion commit or abort together.
//
// Guarantees for a fixed shard key: two concurrent calls never return the
// same value, and the values handed to N concurrent callers are exactly the
// next N integers in some order. No ordering is implied across different
// shard keys; that independence is the entire point of sharding.
type OrderNumberGenerator struct {
	granularity Granularity
}

// NewOrderNumberGenerator creates a generator with the given shard granularity.
func NewOrderNumberGenerator(granularity Granularity) (OrderNumberGenerator, error) {
	if err := granularity.Validate(); err != nil {
		return OrderNumberGenerator{}, err
	}
	return OrderNumberGenerator{granularity: granularity}, nil
}

// Granularity returns the configured shard granularity.
func (g OrderNumberGenerator) Granularity() Granularity {
	return g.granularity
}

// SequenceKey derives the counter shard key for a timestamp according to the
// configured granularity. Pure function, exposed for pre-validation and tests.
func (g OrderNumberGenerator) SequenceKey(now time.Time) string {
	if g.granularity == GranularityHourly {
		return kernel.HourlySequenceKey(now)
	}
	return kernel.DailySequenceKey(now)
}

// Next produces the next order number for the timestamp's shard.
//
// The sequences repository must be bound to the caller's active
// order-creation transaction. The upsert is attempted once and, on failure,
// retried once — the operation is idempotent at the store level, so a retry
// can never hand out a stale or duplicate value. If the retry also fails the
// error wraps ErrNumberGenerationFailed and the caller must abort the
// enclosing transaction.
//
// Returns the generated number and the business date it is scoped to.
func (g OrderNumberGenerator) Next(
	ctx context.Context,
	sequences ports.SequenceRepository,
	now time.Time,
) (int, kernel.BusinessDate, error) {
	key := g.SequenceKey(now)

	value, err := sequences.Next(ctx, key)
	if err != nil {
		// Single fallback attempt: re-run the same atomic statement.
		value, err = sequences.Next(ctx, key)
	}
	if err != nil {
		return 0, kernel.BusinessDate{}, fmt.Errorf("%w: key %s: %w", ErrNumberGenerationFailed, key, err)
	}

	return value, kernel.BusinessDateOf(now), nil
}
