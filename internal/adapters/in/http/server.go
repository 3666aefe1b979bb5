// Package http exposes the order simulator's REST API on echo.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"ordersim/internal/core/application/usecases/commands"
	"ordersim/internal/core/application/usecases/queries"
	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/jobs"
	"ordersim/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	stores kernel.StoreSet

	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getOrdersByUserHandler queries.GetOrdersByUserQueryHandler
	getOrderStatsHandler   queries.GetOrderStatsQueryHandler

	sweepJob *jobs.StatusSweepJob
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	stores kernel.StoreSet,
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByUserHandler queries.GetOrdersByUserQueryHandler,
	getOrderStatsHandler queries.GetOrderStatsQueryHandler,
	sweepJob *jobs.StatusSweepJob,
) *Server {
	return &Server{
		stores:                 stores,
		createOrderHandler:     createOrderHandler,
		cancelOrderHandler:     cancelOrderHandler,
		getOrderHandler:        getOrderHandler,
		getOrdersByUserHandler: getOrdersByUserHandler,
		getOrderStatsHandler:   getOrderStatsHandler,
		sweepJob:               sweepJob,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/stats/summary", s.GetOrderStats)
	api.GET("/orders/user/:userId", s.GetOrdersByUser)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/:orderId/status", s.GetOrderStatus)
	api.PUT("/orders/:orderId/cancel", s.CancelOrder)

	api.GET("/scheduler/status", s.GetSchedulerStatus)
	api.POST("/scheduler/trigger", s.TriggerSweep)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	store, err := s.stores.Resolve(request.Store)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := newCreateOrderCommand(request, store)
	if err != nil {
		return errorResponse(ctx, err)
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(placed))
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := newGetOrderQuery(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(response))
}

// GetOrderStatus handles GET /api/v1/orders/:orderId/status - retrieves the
// compact status view of one order.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	query, err := newGetOrderQuery(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatus{
		OrderID:           response.OrderID,
		Status:            response.Status,
		EstimatedDelivery: response.EstimatedDelivery,
		NextStatusUpdate:  response.NextStatusUpdate,
	})
}

// GetOrdersByUser handles GET /api/v1/orders/user/:userId - retrieves one
// page of a user's order history. Supports limit, skip, status, and store
// query parameters.
func (s *Server) GetOrdersByUser(ctx echo.Context) error {
	limit, err := intQueryParam(ctx, "limit", 0)
	if err != nil {
		return errorResponse(ctx, err)
	}
	skip, err := intQueryParam(ctx, "skip", 0)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrdersByUserQuery(
		ctx.Param("userId"),
		limit,
		skip,
		ctx.QueryParam("status"),
		ctx.QueryParam("store"),
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	page, err := s.getOrdersByUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders := make([]Order, 0, len(page.Orders))
	for _, response := range page.Orders {
		orders = append(orders, orderFromResponse(response))
	}

	return ctx.JSON(http.StatusOK, OrdersPage{
		Orders: orders,
		Total:  page.Total,
		Limit:  query.Limit(),
		Skip:   query.Skip(),
	})
}

// CancelOrder handles PUT /api/v1/orders/:orderId/cancel - cancels an order
// by explicit request. The body is optional; a missing reason falls back to
// the default.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var request CancelOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	id, err := kernel.OrderIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, request.Reason)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(cancelled))
}

// GetOrderStats handles GET /api/v1/orders/stats/summary - aggregates order
// counts and revenue, optionally filtered by userId and store query parameters.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	query, err := queries.NewGetOrderStatsQuery(ctx.QueryParam("userId"), ctx.QueryParam("store"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	stats, err := s.getOrderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	breakdown := make([]StatusStoreStats, 0, len(stats.Breakdown))
	for _, cell := range stats.Breakdown {
		breakdown = append(breakdown, StatusStoreStats(cell))
	}

	byStore := make([]StoreStats, 0, len(stats.ByStore))
	for _, storeStats := range stats.ByStore {
		byStore = append(byStore, StoreStats(storeStats))
	}

	return ctx.JSON(http.StatusOK, OrderStats{
		TotalOrders:  stats.TotalOrders,
		ActiveOrders: stats.ActiveOrders,
		TotalRevenue: stats.TotalRevenue,
		Breakdown:    breakdown,
		ByStatus:     stats.ByStatus,
		ByStore:      byStore,
	})
}

// GetSchedulerStatus handles GET /api/v1/scheduler/status.
func (s *Server) GetSchedulerStatus(ctx echo.Context) error {
	status := s.sweepJob.Status()

	response := SchedulerStatus{
		Running:       status.Running,
		PeriodSeconds: int(status.Period.Seconds()),
	}
	if !status.NextRun.IsZero() {
		nextRun := status.NextRun
		response.NextRun = &nextRun
	}

	return ctx.JSON(http.StatusOK, response)
}

// TriggerSweep handles POST /api/v1/scheduler/trigger - runs one sweep
// synchronously and reports what it did.
func (s *Server) TriggerSweep(ctx echo.Context) error {
	result, err := s.sweepJob.TriggerUpdate(ctx.Request().Context())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SweepResult(result))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func newCreateOrderCommand(request CreateOrderRequest, store kernel.Store) (commands.CreateOrderCommand, error) {
	items := make([]order.Item, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		item, err := order.NewItem(itemRequest.ProductID, itemRequest.Title, itemRequest.Price, itemRequest.Quantity)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		items = append(items, item)
	}

	return commands.NewCreateOrderCommand(request.UserID, store, items)
}

func newGetOrderQuery(rawOrderID string) (queries.GetOrderQuery, error) {
	id, err := kernel.OrderIDFromString(rawOrderID)
	if err != nil {
		return queries.GetOrderQuery{}, err
	}

	return queries.NewGetOrderQuery(id)
}

func intQueryParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidError(name)
	}

	return value, nil
}

// errorResponse maps domain error kinds onto HTTP statuses. Unrecognized
// errors become opaque 500s so storage details never reach clients.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, errs.ErrStatusIsTerminal),
		errors.Is(err, errs.ErrTransitionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrStorageUnavailable):
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Storage unavailable",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
