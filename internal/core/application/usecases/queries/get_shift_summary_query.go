package queries

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrGetShiftSummaryQueryIsNotConstructed = errors.New(
	"GetShiftSummaryQuery must be created via NewGetShiftSummaryQuery constructor",
)

// GetShiftSummaryQuery aggregates one business day's orders into shift totals.
// The business date, not the calendar date, decides which orders count: the
// 2 AM rush belongs to the previous day's shift.
type GetShiftSummaryQuery struct { //nolint:recvcheck //using for validation
	businessDate kernel.BusinessDate

	guard guard.ConstructorGuard
}

// NewGetShiftSummaryQuery creates a query for one business day's totals.
func NewGetShiftSummaryQuery(businessDate kernel.BusinessDate) (GetShiftSummaryQuery, error) {
	query := GetShiftSummaryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setBusinessDate(businessDate); err != nil {
		return GetShiftSummaryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShiftSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetShiftSummaryQueryIsNotConstructed)
}

// BusinessDate returns the operating day being summarized.
func (q GetShiftSummaryQuery) BusinessDate() kernel.BusinessDate {
	return q.businessDate
}

func (q *GetShiftSummaryQuery) setBusinessDate(businessDate kernel.BusinessDate) error {
	if businessDate.IsZero() {
		return errs.NewValueIsRequiredError("business date")
	}

	q.businessDate = businessDate
	return nil
}

// GetShiftSummaryQueryResponse represents one shift's totals.
//
// FirstNumber and LastNumber are the lowest and highest order numbers handed
// out on the shift; gaps between them are expected after rolled-back intakes.
type GetShiftSummaryQueryResponse struct {
	BusinessDate kernel.BusinessDate
	TotalOrders  int
	FirstNumber  int
	LastNumber   int
	TotalUnits   int
	StatusCounts map[order.Status]int
}
