package settings_test

import (
	"context"
	"testing"
	"time"

	"pos/internal/core/domain/services"
	"pos/internal/pkg/errs"
	"pos/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("should cache repository reads", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("Get", ctx, "numbering.granularity").Return("hourly", nil).Once()

		store := settings.NewStore(repo, time.Minute)

		for range 3 {
			value, err := store.Get(ctx, "numbering.granularity")
			require.NoError(t, err)
			assert.Equal(t, "hourly", value)
		}

		repo.AssertExpectations(t)
	})

	t.Run("should re-read after invalidate", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("Get", ctx, "numbering.granularity").Return("daily", nil).Twice()

		store := settings.NewStore(repo, time.Minute)

		_, err := store.Get(ctx, "numbering.granularity")
		require.NoError(t, err)

		store.Invalidate("numbering.granularity")

		_, err = store.Get(ctx, "numbering.granularity")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("should not cache a missing key", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		notFound := errs.NewObjectNotFoundError("key", "numbering.granularity")
		repo.On("Get", ctx, "numbering.granularity").Return("", notFound).Twice()

		store := settings.NewStore(repo, time.Minute)

		_, err := store.Get(ctx, "numbering.granularity")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = store.Get(ctx, "numbering.granularity")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		repo.AssertExpectations(t)
	})
}

func TestStore_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("should write through and refresh the cache", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("Set", ctx, "numbering.granularity", "hourly").Return(nil).Once()

		store := settings.NewStore(repo, time.Minute)

		require.NoError(t, store.Set(ctx, "numbering.granularity", "hourly"))

		// No repository Get expectation: the value must come from cache.
		value, err := store.Get(ctx, "numbering.granularity")
		require.NoError(t, err)
		assert.Equal(t, "hourly", value)
		repo.AssertExpectations(t)
	})
}

func TestNumberingConfig_Granularity(t *testing.T) {
	ctx := context.Background()

	t.Run("should return configured granularity", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("Get", ctx, settings.KeyNumberingGranularity).Return("hourly", nil).Once()

		config := settings.NewNumberingConfig(settings.NewStore(repo, time.Minute))

		granularity, err := config.Granularity(ctx)

		require.NoError(t, err)
		assert.Equal(t, services.GranularityHourly, granularity)
	})

	t.Run("should default to daily when unset", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		notFound := errs.NewObjectNotFoundError("key", settings.KeyNumberingGranularity)
		repo.On("Get", ctx, settings.KeyNumberingGranularity).Return("", notFound).Once()

		config := settings.NewNumberingConfig(settings.NewStore(repo, time.Minute))

		granularity, err := config.Granularity(ctx)

		require.NoError(t, err)
		assert.Equal(t, services.GranularityDaily, granularity)
	})

	t.Run("should reject malformed value", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("Get", ctx, settings.KeyNumberingGranularity).Return("weekly", nil).Once()

		config := settings.NewNumberingConfig(settings.NewStore(repo, time.Minute))

		_, err := config.Granularity(ctx)

		require.Error(t, err)
	})
}
