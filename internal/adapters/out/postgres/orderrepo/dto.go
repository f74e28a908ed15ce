// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
//
// (business_date, order_number) is indexed but deliberately not unique:
// under hourly numbering granularity the same number legitimately recurs
// within one business date.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber   int       `gorm:"index:idx_orders_date_number"`
	BusinessDate  string    `gorm:"type:char(8);index:idx_orders_date_number"`
	Source        int
	Status        int `gorm:"index"`
	PaymentStatus int
	ClosedAt      *time.Time
	Version       int
	Items         []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line in the database.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	Notes     string
	Status    int
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			Notes:     item.Notes(),
			Status:    int(item.Status()),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.Number(),
		BusinessDate:  aggregate.BusinessDate().Key(),
		Source:        int(aggregate.Source()),
		Status:        int(aggregate.Status()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		ClosedAt:      aggregate.ClosedAt(),
		Version:       aggregate.Version(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, so all invariants are re-validated on the way out.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	businessDate, err := kernel.BusinessDateFromKey(dto.BusinessDate)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.RestoreItem(
			itemID,
			productID,
			itemDTO.Quantity,
			itemDTO.Notes,
			order.ItemStatus(itemDTO.Status),
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		businessDate,
		order.Source(dto.Source),
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		items,
		dto.ClosedAt,
		dto.Version,
	)
}
