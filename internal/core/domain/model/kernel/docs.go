// Package kernel provides shared value objects used across the POS domain model.
//
// The package includes:
//   - UUID: An immutable identifier value object wrapping github.com/google/uuid
//   - BusinessDate: The operating day for accounting purposes, derived from a
//     timestamp with a fixed early-morning cutoff so that late-night activity
//     still counts toward the prior day
//   - Sequence key derivation: the partition identifiers used to select which
//     order-number counter row a request contends on
//
// Value objects in this package are immutable and safe for concurrent use.
package kernel
