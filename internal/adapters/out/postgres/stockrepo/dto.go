// Package stockrepo persists per-product stock levels.
package stockrepo

import "github.com/google/uuid"

// StockDTO represents one product's stock level row.
type StockDTO struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null"`
}

// TableName specifies the database table name for stock rows.
func (StockDTO) TableName() string {
	return "stock_levels"
}
