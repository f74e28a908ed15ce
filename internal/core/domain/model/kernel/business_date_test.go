package kernel_test

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"pos/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessDateOf_Cutoff(t *testing.T) {
	t.Run("should shift timestamps before 6 AM to previous day", func(t *testing.T) {
		ts := time.Date(2026, 1, 19, 5, 30, 0, 0, time.UTC)

		assert.Equal(t, "20260118", kernel.BusinessDateOf(ts).Key())
	})

	t.Run("should keep timestamps at or after 6 AM on same day", func(t *testing.T) {
		ts := time.Date(2026, 1, 19, 8, 0, 0, 0, time.UTC)

		assert.Equal(t, "20260119", kernel.BusinessDateOf(ts).Key())
	})

	t.Run("should treat exactly 6 AM as start of new business day", func(t *testing.T) {
		ts := time.Date(2026, 1, 19, 6, 0, 0, 0, time.UTC)

		assert.Equal(t, "20260119", kernel.BusinessDateOf(ts).Key())
	})

	t.Run("should shift all hours below cutoff and none at or above", func(t *testing.T) {
		for hour := range 24 {
			ts := time.Date(2026, 3, 15, hour, 45, 0, 0, time.UTC)
			got := kernel.BusinessDateOf(ts).Key()

			if hour < kernel.CutoffHour {
				assert.Equal(t, "20260314", got, "hour %d should roll back", hour)
			} else {
				assert.Equal(t, "20260315", got, "hour %d should stay", hour)
			}
		}
	})

	t.Run("should cross month boundary backward", func(t *testing.T) {
		ts := time.Date(2026, 2, 1, 1, 0, 0, 0, time.UTC)

		assert.Equal(t, "20260131", kernel.BusinessDateOf(ts).Key())
	})

	t.Run("should cross year boundary backward", func(t *testing.T) {
		ts := time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC)

		assert.Equal(t, "20251231", kernel.BusinessDateOf(ts).Key())
	})

	t.Run("should be stable for a full business day window", func(t *testing.T) {
		start := time.Date(2026, 1, 19, kernel.CutoffHour, 0, 0, 0, time.UTC)
		expected := kernel.BusinessDateOf(start)

		for offset := time.Duration(0); offset < 24*time.Hour; offset += 30 * time.Minute {
			assert.True(t, expected.IsEqual(kernel.BusinessDateOf(start.Add(offset))),
				"timestamp at offset %s should share the business date", offset)
		}
	})
}

func TestBusinessDateFromKey(t *testing.T) {
	t.Run("should round-trip through key", func(t *testing.T) {
		original := kernel.BusinessDateOf(time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC))

		parsed, err := kernel.BusinessDateFromKey(original.Key())

		require.NoError(t, err)
		assert.True(t, original.IsEqual(parsed))
	})

	t.Run("should reject malformed keys", func(t *testing.T) {
		for _, key := range []string{"", "2026-01-19", "2026011", "notadate"} {
			_, err := kernel.BusinessDateFromKey(key)
			require.Error(t, err, "key %q should be rejected", key)
		}
	})
}

func TestDailySequenceKey(t *testing.T) {
	t.Run("should equal the business date key", func(t *testing.T) {
		ts := time.Date(2026, 1, 19, 5, 30, 0, 0, time.UTC)

		assert.Equal(t, "20260118", kernel.DailySequenceKey(ts))
	})
}

func TestHourlySequenceKey(t *testing.T) {
	t.Run("should keep original hour when date rolls back", func(t *testing.T) {
		ts := time.Date(2026, 1, 20, 2, 30, 0, 0, time.UTC)

		assert.Equal(t, "2026011902", kernel.HourlySequenceKey(ts))
	})

	t.Run("should use business date with unshifted hour for all hours", func(t *testing.T) {
		for hour := range 24 {
			ts := time.Date(2026, 1, 20, hour, 15, 0, 0, time.UTC)
			expected := fmt.Sprintf("%s%02d", kernel.BusinessDateOf(ts).Key(), hour)

			assert.Equal(t, expected, kernel.HourlySequenceKey(ts))
		}
	})

	t.Run("should produce 24 distinct keys per calendar day", func(t *testing.T) {
		keys := make(map[string]struct{})
		for hour := range 24 {
			ts := time.Date(2026, 1, 20, hour, 0, 0, 0, time.UTC)
			keys[kernel.HourlySequenceKey(ts)] = struct{}{}
		}

		assert.Len(t, keys, 24)
	})

	t.Run("should order lexicographically within one business date", func(t *testing.T) {
		// One business day runs from 06:00 to 05:59 the next calendar day.
		var timestamps []time.Time
		for hour := kernel.CutoffHour; hour < 24; hour++ {
			timestamps = append(timestamps, time.Date(2026, 1, 19, hour, 0, 0, 0, time.UTC))
		}

		var keys []string
		for _, ts := range timestamps {
			keys = append(keys, kernel.HourlySequenceKey(ts))
		}

		sorted := append([]string(nil), keys...)
		sort.Strings(sorted)
		assert.Equal(t, sorted, keys, "chronological order should match string order")
	})
}
