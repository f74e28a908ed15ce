package queries

import (
	"context"

	"pos/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetShiftSummaryQueryHandler computes shift totals straight from the
// database. An empty shift is a valid answer, not an error: a closed location
// simply reports zero orders.
type GetShiftSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetShiftSummaryQueryHandler creates a handler for shift summary queries.
func NewGetShiftSummaryQueryHandler(db *gorm.DB) GetShiftSummaryQueryHandler {
	return GetShiftSummaryQueryHandler{db: db}
}

// Handle executes the summary query for one business date.
func (h GetShiftSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetShiftSummaryQuery,
) (GetShiftSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShiftSummaryQueryResponse{}, err
	}

	resp := GetShiftSummaryQueryResponse{
		BusinessDate: query.BusinessDate(),
		StatusCounts: make(map[order.Status]int),
	}
	dateKey := query.BusinessDate().Key()

	if err := h.readStatusCounts(ctx, dateKey, &resp); err != nil {
		return GetShiftSummaryQueryResponse{}, err
	}
	if err := h.readNumberRange(ctx, dateKey, &resp); err != nil {
		return GetShiftSummaryQueryResponse{}, err
	}
	if err := h.readUnits(ctx, dateKey, &resp); err != nil {
		return GetShiftSummaryQueryResponse{}, err
	}

	return resp, nil
}

func (h GetShiftSummaryQueryHandler) readStatusCounts(
	ctx context.Context,
	dateKey string,
	resp *GetShiftSummaryQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		WHERE business_date = ?
		GROUP BY status
	`, dateKey).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}
		resp.StatusCounts[order.Status(status)] = count
		resp.TotalOrders += count
	}

	return rows.Err()
}

func (h GetShiftSummaryQueryHandler) readNumberRange(
	ctx context.Context,
	dateKey string,
	resp *GetShiftSummaryQueryResponse,
) error {
	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MIN(order_number), 0), COALESCE(MAX(order_number), 0)
		FROM orders
		WHERE business_date = ?
	`, dateKey).Row()

	return row.Scan(&resp.FirstNumber, &resp.LastNumber)
}

func (h GetShiftSummaryQueryHandler) readUnits(
	ctx context.Context,
	dateKey string,
	resp *GetShiftSummaryQueryResponse,
) error {
	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(i.quantity), 0)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.business_date = ?
	`, dateKey).Row()

	return row.Scan(&resp.TotalUnits)
}
