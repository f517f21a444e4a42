package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/queries"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const defaultHistoryLimit = 50

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	createShopperHandler     commands.CreateShopperCommandHandler
	acceptOrderHandler       commands.AcceptOrderCommandHandler
	updateStatusHandler      commands.UpdateOrderStatusCommandHandler
	beginRevisionHandler     commands.BeginRevisionCommandHandler
	resolveRevisionHandler   commands.ResolveRevisionCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	setAvailabilityHandler   commands.SetAvailabilityCommandHandler
	updateLocationHandler    commands.UpdateShopperLocationCommandHandler
	forceStatusHandler       commands.ForceOrderStatusCommandHandler
	forceAvailabilityHandler commands.ForceShopperAvailabilityCommandHandler

	// Query handlers
	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler
	getOrderHistoryHandler    queries.GetOrderHistoryQueryHandler
	getEarningsSummaryHandler queries.GetEarningsSummaryQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createShopperHandler commands.CreateShopperCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	beginRevisionHandler commands.BeginRevisionCommandHandler,
	resolveRevisionHandler commands.ResolveRevisionCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	setAvailabilityHandler commands.SetAvailabilityCommandHandler,
	updateLocationHandler commands.UpdateShopperLocationCommandHandler,
	forceStatusHandler commands.ForceOrderStatusCommandHandler,
	forceAvailabilityHandler commands.ForceShopperAvailabilityCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getEarningsSummaryHandler queries.GetEarningsSummaryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		createShopperHandler:      createShopperHandler,
		acceptOrderHandler:        acceptOrderHandler,
		updateStatusHandler:       updateStatusHandler,
		beginRevisionHandler:      beginRevisionHandler,
		resolveRevisionHandler:    resolveRevisionHandler,
		cancelOrderHandler:        cancelOrderHandler,
		setAvailabilityHandler:    setAvailabilityHandler,
		updateLocationHandler:     updateLocationHandler,
		forceStatusHandler:        forceStatusHandler,
		forceAvailabilityHandler:  forceAvailabilityHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		getOrderHistoryHandler:    getOrderHistoryHandler,
		getEarningsSummaryHandler: getEarningsSummaryHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderId/accept", s.AcceptOrder)
	api.POST("/orders/:orderId/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderId/revision", s.BeginRevision)
	api.POST("/orders/:orderId/revision/resolve", s.ResolveRevision)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)

	api.POST("/shoppers", s.CreateShopper)
	api.PUT("/shoppers/:shopperId/availability", s.SetAvailability)
	api.POST("/shoppers/:shopperId/location", s.UpdateLocation)
	api.GET("/shoppers/:shopperId/orders/active", s.GetActiveOrders)
	api.GET("/shoppers/:shopperId/orders/history", s.GetOrderHistory)
	api.GET("/shoppers/:shopperId/earnings", s.GetEarnings)

	api.POST("/admin/orders/:orderId/status", s.ForceOrderStatus)
	api.PUT("/admin/shoppers/:shopperId/availability", s.ForceShopperAvailability)
}

// CreateOrder handles POST /api/v1/orders - registers an order awaiting a shopper.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	orderID := kernel.NewUUID()
	if request.ID != "" {
		parsed, err := kernel.UUIDFromString(request.ID)
		if err != nil {
			return writeBadRequest(ctx, "invalid order id")
		}
		orderID = parsed
	}

	items := make([]order.LineItem, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		itemID := kernel.NewUUID()
		if itemRequest.ID != "" {
			parsed, err := kernel.UUIDFromString(itemRequest.ID)
			if err != nil {
				return writeBadRequest(ctx, "invalid item id")
			}
			itemID = parsed
		}

		price, err := kernel.NewMoney(itemRequest.Price)
		if err != nil {
			return writeError(ctx, err)
		}
		item, err := order.NewLineItem(itemID, itemRequest.Name, itemRequest.Quantity, price)
		if err != nil {
			return writeError(ctx, err)
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(request.OriginalTotal)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryFee, err := kernel.NewMoney(request.DeliveryFee)
	if err != nil {
		return writeError(ctx, err)
	}
	commission, err := kernel.NewMoney(request.ShopperCommission)
	if err != nil {
		return writeError(ctx, err)
	}

	address, err := order.NewAddress(
		request.Address.Street,
		request.Address.City,
		request.Address.ZipCode,
		request.Address.Instructions,
		request.Address.ContactPhone,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewCreateOrderCommand(
		orderID,
		request.OrderNumber,
		items,
		order.NewPricing(total, deliveryFee, commission),
		address,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// CreateShopper handles POST /api/v1/shoppers - registers a shopper.
func (s *Server) CreateShopper(ctx echo.Context) error {
	var request NewShopperRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	shopperID := kernel.NewUUID()
	if request.ID != "" {
		parsed, err := kernel.UUIDFromString(request.ID)
		if err != nil {
			return writeBadRequest(ctx, "invalid shopper id")
		}
		shopperID = parsed
	}

	command, err := commands.NewCreateShopperCommand(shopperID, request.Name, request.Phone)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createShopperHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: shopperID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:orderId/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var request AcceptOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	shopperID, err := kernel.UUIDFromString(request.ShopperID)
	if err != nil {
		return writeBadRequest(ctx, "invalid shopper id")
	}

	command, err := commands.NewAcceptOrderCommand(orderID, shopperID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles POST /api/v1/orders/:orderId/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var request UpdateStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	command, err := commands.NewUpdateOrderStatusCommand(
		orderID, order.Status(request.Status), request.Actor, request.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateStatusHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BeginRevision handles POST /api/v1/orders/:orderId/revision.
func (s *Server) BeginRevision(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var request RevisionRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	items := make([]order.RevisedItem, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		itemID, itemErr := kernel.UUIDFromString(itemRequest.ItemID)
		if itemErr != nil {
			return writeBadRequest(ctx, "invalid item id")
		}
		price, itemErr := kernel.NewMoney(itemRequest.Price)
		if itemErr != nil {
			return writeError(ctx, itemErr)
		}
		item, itemErr := order.NewRevisedItem(
			itemID, itemRequest.Name, itemRequest.Quantity, price,
			itemRequest.IsAvailable, itemRequest.Note)
		if itemErr != nil {
			return writeError(ctx, itemErr)
		}
		items = append(items, item)
	}

	command, err := commands.NewBeginRevisionCommand(orderID, items, request.Note, time.Now())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.beginRevisionHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveRevision handles POST /api/v1/orders/:orderId/revision/resolve.
func (s *Server) ResolveRevision(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var request ResolveRevisionRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	finalTotal, err := kernel.NewMoney(request.FinalTotal)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewResolveRevisionCommand(orderID, request.Approved, finalTotal)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.resolveRevisionHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var request CancelOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	command, err := commands.NewCancelOrderCommand(orderID, request.Reason, request.Actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetAvailability handles PUT /api/v1/shoppers/:shopperId/availability.
// This is the shopper's own toggle, so it counts as an explicit opt-in and
// clears an admin force-offline.
func (s *Server) SetAvailability(ctx echo.Context) error {
	shopperID, err := kernel.UUIDFromString(ctx.Param("shopperId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid shopper id")
	}

	var request AvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	command, err := commands.NewSetAvailabilityCommand(shopperID, request.IsOnline, true)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateLocation handles POST /api/v1/shoppers/:shopperId/location - the
// HTTP fallback for GPS samples when the event channel is down.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	shopperID, err := kernel.UUIDFromString(ctx.Param("shopperId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid shopper id")
	}

	var request LocationRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	position, err := kernel.NewGeoPosition(
		request.Latitude, request.Longitude, request.Heading, request.Speed, request.TakenAt)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewUpdateShopperLocationCommand(shopperID, position)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateLocationHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/shoppers/:shopperId/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	shopperID, err := kernel.UUIDFromString(ctx.Param("shopperId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid shopper id")
	}

	query, err := queries.NewGetActiveOrdersQuery(shopperID)
	if err != nil {
		return writeError(ctx, err)
	}

	snapshots, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshots)
}

// GetOrderHistory handles GET /api/v1/shoppers/:shopperId/orders/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	shopperID, err := kernel.UUIDFromString(ctx.Param("shopperId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid shopper id")
	}

	limit := defaultHistoryLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return writeBadRequest(ctx, "invalid limit")
		}
		limit = parsed
	}

	query, err := queries.NewGetOrderHistoryQuery(shopperID, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	snapshots, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshots)
}

// GetEarnings handles GET /api/v1/shoppers/:shopperId/earnings.
func (s *Server) GetEarnings(ctx echo.Context) error {
	shopperID, err := kernel.UUIDFromString(ctx.Param("shopperId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid shopper id")
	}

	query, err := queries.NewGetEarningsSummaryQuery(shopperID)
	if err != nil {
		return writeError(ctx, err)
	}

	summary, err := s.getEarningsSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summary)
}

// ForceOrderStatus handles POST /api/v1/admin/orders/:orderId/status - an
// admin correction that still respects the order lifecycle.
func (s *Server) ForceOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var request UpdateStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	command, err := commands.NewForceOrderStatusCommand(
		orderID, order.Status(request.Status), request.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.forceStatusHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ForceShopperAvailability handles PUT /api/v1/admin/shoppers/:shopperId/availability.
// Forcing a shopper offline also severs their event channel.
func (s *Server) ForceShopperAvailability(ctx echo.Context) error {
	shopperID, err := kernel.UUIDFromString(ctx.Param("shopperId"))
	if err != nil {
		return writeBadRequest(ctx, "invalid shopper id")
	}

	var request ForceAvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	command, err := commands.NewForceShopperAvailabilityCommand(
		shopperID, request.IsOnline, request.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.forceAvailabilityHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
