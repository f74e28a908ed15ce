package stockrepo

import (
	"context"
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/stock"
	"pos/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
//
// Deduct is a single guarded decrement so concurrent order intakes can never
// drive a level negative: the quantity check and the subtraction happen in
// one statement.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Deduct atomically removes quantity units from the product's stock level.
// Fails with stock.ErrInsufficientStock when fewer units are on hand, and
// with errs.ObjectNotFoundError when the product has no stock row at all.
func (r *GormStockRepository) Deduct(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	result := r.db.WithContext(ctx).Model(&StockDTO{}).
		Where("product_id = ? AND quantity >= ?", productID.Bytes(), quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&StockDTO{}).
			Where("product_id = ?", productID.Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("productId", productID.String())
		}
		return stock.ErrInsufficientStock
	}

	return nil
}

// Get retrieves the stock level for a product.
func (r *GormStockRepository) Get(ctx context.Context, productID kernel.UUID) (stock.Level, error) {
	if err := productID.Validate(); err != nil {
		return stock.Level{}, err
	}

	var dto StockDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return stock.Level{}, errs.NewObjectNotFoundError("productId", productID.String())
		}
		return stock.Level{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return stock.Level{}, err
	}

	return stock.NewLevel(id, dto.Quantity)
}

// Replenish adds quantity units to the product's stock level, creating the
// row when absent.
func (r *GormStockRepository) Replenish(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	dto := StockDTO{
		ProductID: productID.Bytes(),
		Quantity:  quantity,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("stock_levels.quantity + excluded.quantity"),
		}),
	}).Create(&dto).Error
}
