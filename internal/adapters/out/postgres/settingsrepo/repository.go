package settingsrepo

import (
	"context"
	"errors"

	"pos/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get retrieves the value for a settings key.
func (r *GormSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	var dto SettingDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("key", key)
		}
		return "", err
	}

	return dto.Value, nil
}

// Set stores the value for a settings key, creating the row when absent.
func (r *GormSettingsRepository) Set(ctx context.Context, key string, value string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}

	dto := SettingDTO{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&dto).Error
}
