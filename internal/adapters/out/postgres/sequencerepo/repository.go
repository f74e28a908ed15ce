package sequencerepo

import (
	"context"

	"pos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSequenceRepository implements SequenceRepository using GORM.
//
// Next is intentionally raw SQL: the insert-or-increment must be one
// statement so the database serializes concurrent callers on the row, with no
// read-then-write window for two of them to see the same value.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GORM sequence repository.
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next atomically creates the counter row for key with value 1, or increments
// the existing row, and returns the resulting value.
func (r *GormSequenceRepository) Next(ctx context.Context, key string) (int, error) {
	if key == "" {
		return 0, errs.NewValueIsRequiredError("key")
	}

	var value int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_number_sequences (key, current_value)
		VALUES (?, 1)
		ON CONFLICT (key) DO UPDATE
		SET current_value = order_number_sequences.current_value + 1
		RETURNING current_value
	`, key).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}

// DeleteOlderThan removes counter rows whose key sorts strictly below
// cutoffKey and returns the number of rows removed.
func (r *GormSequenceRepository) DeleteOlderThan(ctx context.Context, cutoffKey string) (int64, error) {
	if cutoffKey == "" {
		return 0, errs.NewValueIsRequiredError("cutoffKey")
	}

	result := r.db.WithContext(ctx).Where("key < ?", cutoffKey).Delete(&SequenceDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
