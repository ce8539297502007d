// Package http exposes the order lifecycle over a REST API.
// It coordinates between echo handlers and application use cases; all
// business rules live behind the command and query handlers.
package http

import (
	"errors"
	"net/http"
	"time"

	"washday/internal/core/application/usecases/commands"
	"washday/internal/core/application/usecases/queries"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"
	"washday/internal/core/ports"
	"washday/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// Server holds the use case handlers behind the REST routes.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	// Query handlers
	trackOrderHandler      queries.TrackOrderQueryHandler
	getCapacityHandler     queries.GetCapacityQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler

	// photoStore keeps the pickup photos drivers attach before the
	// picked_up transition.
	photoStore ports.PhotoStore

	// trackingBaseURL prefixes the magic link returned on intake,
	// e.g. "https://washday.example.com".
	trackingBaseURL string
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	getCapacityHandler queries.GetCapacityQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	photoStore ports.PhotoStore,
	trackingBaseURL string,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		changeStatusHandler:    changeStatusHandler,
		cancelOrderHandler:     cancelOrderHandler,
		trackOrderHandler:      trackOrderHandler,
		getCapacityHandler:     getCapacityHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
		photoStore:             photoStore,
		trackingBaseURL:        trackingBaseURL,
	}
}

// RegisterRoutes mounts the API. Guest routes carry their credential in the
// URL; staff routes go through the session middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *AuthMiddleware) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/track/:token", s.TrackOrder)
	api.POST("/orders/track/:token/cancel", s.CancelOrderByToken)
	api.GET("/capacity", s.GetCapacity)

	api.POST("/orders/:id/status", s.ChangeOrderStatus,
		auth.RequireRole(kernel.RoleDriver, kernel.RoleAdmin))
	api.POST("/orders/:id/photo", s.UploadPickupPhoto,
		auth.RequireRole(kernel.RoleDriver, kernel.RoleAdmin))
	api.POST("/orders/:id/cancel", s.CancelOrder,
		auth.RequireRole(kernel.RoleCustomer, kernel.RoleAdmin))
	api.GET("/orders/active", s.GetActiveOrders,
		auth.RequireRole(kernel.RoleAdmin))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - schedules a new pickup.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	pickupDate, err := time.Parse(dateLayout, req.PickupDate)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "pickup_date must be YYYY-MM-DD")
	}
	serviceType, err := order.ServiceTypeFromString(req.ServiceType)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}
	timeWindow, err := order.TimeWindowFromString(req.TimeWindow)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}
	pickupAddress, err := toAddress(req.PickupAddress)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}
	deliveryAddress, err := toAddress(req.DeliveryAddress)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}
	addOns, err := kernel.NewMoneyFromCents(req.AddOnsCents)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		req.CustomerName, req.CustomerEmail, req.CustomerPhone,
		pickupAddress, deliveryAddress,
		serviceType, req.DeclaredPounds,
		pickupDate, timeWindow,
		addOns,
	)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:             result.OrderID.String(),
		AccessToken:    result.AccessToken,
		TrackingURL:    s.trackingBaseURL + "/api/v1/orders/track/" + result.AccessToken,
		TokenExpiresAt: result.TokenExpiresAt,
		SubtotalCents:  result.Subtotal.Cents(),
		TotalCents:     result.Total.Cents(),
	})
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - applies one
// lifecycle transition on behalf of the authenticated actor.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "Missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, target, actor.ID, actor.Role, req.WeightOunces, req.PhotoKey, req.DeliveryNotes)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		ID:                 result.OrderID.String(),
		Status:             result.Status.String(),
		Version:            result.Version,
		WeightOunces:       result.WeightOunces,
		DeliveryNotes:      result.DeliveryNotes,
		PickedUpAt:         result.PickedUpAt,
		ReadyForDeliveryAt: result.ReadyForDeliveryAt,
		DeliveredAt:        result.DeliveredAt,
	})
}

// UploadPickupPhoto handles POST /api/v1/orders/:id/photo - stores the
// driver's intake photo and returns the key to pass on the picked_up
// transition.
func (s *Server) UploadPickupPhoto(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	contentType := ctx.Request().Header.Get(echo.HeaderContentType)
	key, err := s.photoStore.Upload(
		ctx.Request().Context(), orderID.String(), contentType, ctx.Request().Body)
	if err != nil {
		return writeError(ctx, http.StatusBadGateway, "Photo upload failed")
	}

	return ctx.JSON(http.StatusCreated, PhotoUploadResponse{PhotoKey: key})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "Missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor.ID, actor.Role)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackOrder handles GET /api/v1/orders/track/:token - the guest magic link.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("token"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	view, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeDomainError(ctx, err)
	}

	history := make([]TrackHistoryEntry, len(view.History))
	for i, entry := range view.History {
		history[i] = TrackHistoryEntry{
			From: entry.From.String(),
			To:   entry.To.String(),
			At:   entry.At,
		}
	}

	return ctx.JSON(http.StatusOK, TrackOrderResponse{
		ID:              view.OrderID.String(),
		Status:          view.Status.String(),
		ServiceType:     view.ServiceType.String(),
		DeclaredPounds:  view.DeclaredPounds,
		WeightOunces:    view.WeightOunces,
		PickupDate:      view.PickupDate,
		TimeWindow:      view.TimeWindow.String(),
		PickupAddress:   view.PickupAddress,
		DeliveryAddress: view.DeliveryAddress,
		SubtotalCents:   view.SubtotalCents,
		TotalCents:      view.TotalCents,
		Currency:        view.Currency,
		DeliveryNotes:   view.DeliveryNotes,
		PickedUpAt:      view.PickedUpAt,
		DeliveredAt:     view.DeliveredAt,
		History:         history,
	})
}

// CancelOrderByToken handles POST /api/v1/orders/track/:token/cancel -
// cancellation through the guest magic link.
func (s *Server) CancelOrderByToken(ctx echo.Context) error {
	err := s.cancelOrderHandler.HandleByToken(ctx.Request().Context(), ctx.Param("token"))
	if err != nil {
		return s.writeDomainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetCapacity handles GET /api/v1/capacity?postal_code=&date= - remaining
// slots per laundromat serving the postal code on that date.
func (s *Server) GetCapacity(ctx echo.Context) error {
	postalCode, err := kernel.NewPostalCode(ctx.QueryParam("postal_code"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse(dateLayout, ctx.QueryParam("date"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	query, err := queries.NewGetCapacityQuery(postalCode, date)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	rows, err := s.getCapacityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeDomainError(ctx, err)
	}

	response := make([]CapacitySlot, len(rows))
	for i, row := range rows {
		response[i] = CapacitySlot{
			LaundromatID: row.LaundromatID.String(),
			Name:         row.Name,
			Ceiling:      row.Ceiling,
			Consumed:     row.Consumed,
			Remaining:    row.Remaining,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active - the staff dashboard.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	rows, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeDomainError(ctx, err)
	}

	response := make([]ActiveOrder, len(rows))
	for i, row := range rows {
		response[i] = ActiveOrder{
			ID:               row.OrderID.String(),
			Status:           row.Status.String(),
			ServiceType:      row.ServiceType.String(),
			PickupDate:       row.PickupDate,
			TimeWindow:       row.TimeWindow.String(),
			PickupPostalCode: row.PickupPostalCode,
			TotalCents:       row.TotalCents,
			CustomerName:     row.CustomerName,
			CustomerEmail:    row.CustomerEmail,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toAddress(payload AddressPayload) (order.Address, error) {
	postalCode, err := kernel.NewPostalCode(payload.PostalCode)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(payload.Line1, payload.Line2, payload.City, postalCode)
}

func writeError(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, Error{Code: status, Message: message})
}

// writeDomainError maps use case failures onto status codes. Concurrency
// losses surface as 409 so clients retry against fresh state.
func (s *Server) writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, queries.ErrAccessTokenExpired),
		errors.Is(err, commands.ErrAccessTokenExpired):
		return writeError(ctx, http.StatusGone, "Tracking link has expired")
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, "Not found")
	case errors.Is(err, ports.ErrPaymentFailed):
		return writeError(ctx, http.StatusPaymentRequired, "Payment capture failed")
	case errors.Is(err, commands.ErrNoLaundromatAvailable):
		return writeError(ctx, http.StatusConflict, "No laundromat has capacity for that date")
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return writeError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return writeError(ctx, http.StatusBadRequest, err.Error())
	default:
		return writeError(ctx, http.StatusInternalServerError, "Internal error")
	}
}
