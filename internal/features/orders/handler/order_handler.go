package handler

import (
	"errors"

	"order-service/internal/features/orders/domain"
	"order-service/internal/features/orders/ports"
	"order-service/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	orderService ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// CreateOrderRequest is the JSON body of the create-order endpoint.
type CreateOrderRequest struct {
	CustomerID      int64              `json:"customer_id"`
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shipping_address"`
	CouponCode      string             `json:"coupon_code,omitempty"`
}

// OrderItemRequest is a requested product and quantity.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderResponse carries the id of the newly created order.
type CreateOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

// CancelOrderRequest identifies the customer requesting the cancellation.
type CancelOrderRequest struct {
	CustomerID int64 `json:"customer_id"`
}

// RegisterRoutes mounts the order endpoints on the given router.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Post("/", h.CreateOrder)
	orders.Get("/:id", h.GetOrder)
	orders.Post("/:id/pay", h.PayOrder)
	orders.Post("/:id/cancel", h.CancelOrder)
	orders.Post("/:id/ship", h.ShipOrder)
	orders.Get("/:id/priority", h.GetOrderPriority)
	orders.Get("/:id/discount", h.CalculateDiscount)
}

// CreateOrder godoc
// @Summary Create a new order
// @Description Creates an order for a customer, reserving stock and optionally applying a coupon
// @Tags orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order details"
// @Success 201 {object} CreateOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	items := make([]ports.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ports.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	orderID, err := h.orderService.CreateOrder(c.Context(), ports.CreateOrderCommand{
		CustomerID:      req.CustomerID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreateOrderResponse{OrderID: orderID})
}

// GetOrder godoc
// @Summary Get an order
// @Description Retrieves an order with its items, amounts, and status
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} ports.OrderView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, ok := orderIDParam(c)
	if !ok {
		return badOrderID(c)
	}

	view, err := h.orderService.GetOrder(c.Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(view)
}

// PayOrder godoc
// @Summary Pay an order
// @Description Marks a pending order as paid
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/pay [post]
func (h *OrderHandler) PayOrder(c *fiber.Ctx) error {
	orderID, ok := orderIDParam(c)
	if !ok {
		return badOrderID(c)
	}

	if err := h.orderService.PayOrder(c.Context(), orderID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Cancels an order on behalf of the customer who placed it, restoring stock and coupon
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body CancelOrderRequest true "Requesting customer"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	orderID, ok := orderIDParam(c)
	if !ok {
		return badOrderID(c)
	}

	var req CancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	if err := h.orderService.CancelOrder(c.Context(), orderID, req.CustomerID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ShipOrder godoc
// @Summary Ship an order
// @Description Marks a paid order as shipped
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/ship [post]
func (h *OrderHandler) ShipOrder(c *fiber.Ctx) error {
	orderID, ok := orderIDParam(c)
	if !ok {
		return badOrderID(c)
	}

	if err := h.orderService.ShipOrder(c.Context(), orderID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetOrderPriority godoc
// @Summary Get the fulfillment priority of an order
// @Description Classifies the order as HIGH, MEDIUM, or LOW priority from its total amount
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} ports.PriorityView
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id}/priority [get]
func (h *OrderHandler) GetOrderPriority(c *fiber.Ctx) error {
	orderID, ok := orderIDParam(c)
	if !ok {
		return badOrderID(c)
	}

	view, err := h.orderService.GetOrderPriority(c.Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(view)
}

// CalculateDiscount godoc
// @Summary Calculate the tier discount for an order
// @Description Computes the discount the order qualifies for from the customer's order history
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} ports.DiscountView
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id}/discount [get]
func (h *OrderHandler) CalculateDiscount(c *fiber.Ctx) error {
	orderID, ok := orderIDParam(c)
	if !ok {
		return badOrderID(c)
	}

	view, err := h.orderService.CalculateDiscount(c.Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(view)
}

func orderIDParam(c *fiber.Ctx) (int64, bool) {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return 0, false
	}
	return int64(orderID), true
}

func badOrderID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: "order id must be a positive integer",
		RayID:   rayID(c),
	})
}

func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrStateConflict):
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
