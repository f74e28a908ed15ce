// Package http exposes the ordering core over a REST API.
// Handlers translate JSON requests into commands and queries, and translate
// domain errors into HTTP status codes; no business logic lives here.
package http

import (
	"errors"
	"net/http"
	"time"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/domain/model/stock"
	"pos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	addOrderItemsHandler     commands.AddOrderItemsCommandHandler
	markItemsServedHandler   commands.MarkItemsServedCommandHandler

	// Query handlers
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	getShiftSummaryHandler queries.GetShiftSummaryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	addOrderItemsHandler commands.AddOrderItemsCommandHandler,
	markItemsServedHandler commands.MarkItemsServedCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getShiftSummaryHandler queries.GetShiftSummaryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		addOrderItemsHandler:     addOrderItemsHandler,
		markItemsServedHandler:   markItemsServedHandler,
		getActiveOrdersHandler:   getActiveOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getShiftSummaryHandler:   getShiftSummaryHandler,
	}
}

// RegisterRoutes wires the server's handlers into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/webhooks/orders", s.CreatePlatformOrder)
	api.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderId/items", s.AddOrderItems)
	api.POST("/orders/:orderId/served", s.MarkItemsServed)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/shifts/:date/summary", s.GetShiftSummary)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
}

// ErrorResponse is the JSON error body returned by every handler.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderLineRequest is one requested product line.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// CreateOrderRequest is the intake request body.
// PlacedAt is optional; the server clock is used when it is absent.
type CreateOrderRequest struct {
	Source   string             `json:"source"`
	PlacedAt *time.Time         `json:"placed_at,omitempty"`
	Lines    []OrderLineRequest `json:"lines"`
}

// CreateOrderResponse reports the identifiers assigned during intake.
type CreateOrderResponse struct {
	OrderID      string `json:"order_id"`
	Number       int    `json:"number"`
	BusinessDate string `json:"business_date"`
}

// UpdateOrderStatusRequest is the status change request body.
type UpdateOrderStatusRequest struct {
	Status    string     `json:"status"`
	ChangedAt *time.Time `json:"changed_at,omitempty"`
}

// AddOrderItemsRequest appends lines to an existing order.
type AddOrderItemsRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

// OrderItemResponse is one line of an order detail.
type OrderItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
}

// OrderResponse is the full order detail.
type OrderResponse struct {
	ID            string              `json:"id"`
	Number        int                 `json:"number"`
	BusinessDate  string              `json:"business_date"`
	Source        string              `json:"source"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	ClosedAt      *time.Time          `json:"closed_at,omitempty"`
	Version       int                 `json:"version"`
	Items         []OrderItemResponse `json:"items"`
}

// ActiveOrderResponse is one entry of the active-orders listing.
type ActiveOrderResponse struct {
	ID           string `json:"id"`
	Number       int    `json:"number"`
	BusinessDate string `json:"business_date"`
	Source       string `json:"source"`
	Status       string `json:"status"`
	ItemCount    int    `json:"item_count"`
}

// ShiftSummaryResponse reports one business day's totals.
type ShiftSummaryResponse struct {
	BusinessDate string         `json:"business_date"`
	TotalOrders  int            `json:"total_orders"`
	FirstNumber  int            `json:"first_number"`
	LastNumber   int            `json:"last_number"`
	TotalUnits   int            `json:"total_units"`
	StatusCounts map[string]int `json:"status_counts"`
}

// CreateOrder handles POST /api/v1/orders - registers a new guest order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	source, err := order.SourceFromString(request.Source)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	return s.createOrder(ctx, source, request.PlacedAt, request.Lines)
}

// CreatePlatformOrder handles POST /api/v1/webhooks/orders - registers an
// order pushed by a delivery platform. The source is fixed to Platform, so a
// misbehaving integration cannot spoof a dine-in order.
func (s *Server) CreatePlatformOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.createOrder(ctx, order.Platform, request.PlacedAt, request.Lines)
}

func (s *Server) createOrder(
	ctx echo.Context,
	source order.Source,
	placedAt *time.Time,
	lines []OrderLineRequest,
) error {
	orderLines, err := toOrderLines(lines)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	at := time.Now()
	if placedAt != nil {
		at = *placedAt
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), source, at, orderLines)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:      result.OrderID.String(),
		Number:       result.Number,
		BusinessDate: result.BusinessDate.Key(),
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderId/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	changedAt := time.Now()
	if request.ChangedAt != nil {
		changedAt = *request.ChangedAt
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, changedAt)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if handleErr := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddOrderItems handles POST /api/v1/orders/:orderId/items.
func (s *Server) AddOrderItems(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request AddOrderItemsRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderLines, err := toOrderLines(request.Lines)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cmd, err := commands.NewAddOrderItemsCommand(orderID, orderLines)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.addOrderItemsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkItemsServed handles POST /api/v1/orders/:orderId/served - marks every
// item of the order served in one call.
func (s *Server) MarkItemsServed(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewMarkItemsServedCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	if handleErr := s.markItemsServedHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves the in-flight orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, active := range orders {
		response[i] = ActiveOrderResponse{
			ID:           active.ID.String(),
			Number:       active.Number,
			BusinessDate: active.BusinessDate.Key(),
			Source:       active.Source.String(),
			Status:       active.Status.String(),
			ItemCount:    active.ItemCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order with items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	items := make([]OrderItemResponse, len(detail.Items))
	for i, item := range detail.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Notes:     item.Notes,
			Status:    item.Status.String(),
		}
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:            detail.ID.String(),
		Number:        detail.Number,
		BusinessDate:  detail.BusinessDate.Key(),
		Source:        detail.Source.String(),
		Status:        detail.Status.String(),
		PaymentStatus: detail.PaymentStatus.String(),
		ClosedAt:      detail.ClosedAt,
		Version:       detail.Version,
		Items:         items,
	})
}

// GetShiftSummary handles GET /api/v1/shifts/:date/summary - retrieves one
// business day's totals. The date parameter uses the YYYYMMDD business-date key.
func (s *Server) GetShiftSummary(ctx echo.Context) error {
	businessDate, err := kernel.BusinessDateFromKey(ctx.Param("date"))
	if err != nil {
		return badRequest(ctx, "Invalid business date, expected YYYYMMDD")
	}

	query, err := queries.NewGetShiftSummaryQuery(businessDate)
	if err != nil {
		return badRequest(ctx, "Invalid business date: "+err.Error())
	}

	summary, err := s.getShiftSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	statusCounts := make(map[string]int, len(summary.StatusCounts))
	for status, count := range summary.StatusCounts {
		statusCounts[status.String()] = count
	}

	return ctx.JSON(http.StatusOK, ShiftSummaryResponse{
		BusinessDate: summary.BusinessDate.Key(),
		TotalOrders:  summary.TotalOrders,
		FirstNumber:  summary.FirstNumber,
		LastNumber:   summary.LastNumber,
		TotalUnits:   summary.TotalUnits,
		StatusCounts: statusCounts,
	})
}

func toOrderLines(lines []OrderLineRequest) ([]commands.OrderLine, error) {
	orderLines := make([]commands.OrderLine, 0, len(lines))
	for _, line := range lines {
		productID, err := kernel.UUIDFromString(line.ProductID)
		if err != nil {
			return nil, err
		}

		orderLine, err := commands.NewOrderLine(productID, line.Quantity, line.Notes)
		if err != nil {
			return nil, err
		}
		orderLines = append(orderLines, orderLine)
	}

	return orderLines, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps use-case errors to HTTP statuses: unknown objects are 404,
// lost races and business conflicts are 409, bad values are 400, everything
// else is 500.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, order.ErrOrderIsCancelled):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
