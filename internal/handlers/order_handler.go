package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"microshop/internal/models"
	"microshop/internal/services"
)

// OrderHandler handles HTTP requests for the order registry.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/user/:user_id", h.HandleGetUserOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// OrderItemRequest is one line item of an order creation payload.
type OrderItemRequest struct {
	ProductID   string  `json:"product_id" validate:"required"`
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest is the payload for creating an order.
type CreateOrderRequest struct {
	UserID          string             `json:"user_id" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
}

// UpdateOrderRequest is the partial payload for updating an order; only
// status and shipping address are mutable.
type UpdateOrderRequest struct {
	Status          *string `json:"status"`
	ShippingAddress *string `json:"shipping_address"`
}

// HandleCreateOrder creates a new order after the user-existence check.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	// c.Context() is canceled when the client disconnects, which abandons
	// the outbound verification call.
	order, err := h.service.Create(c.Context(), req.UserID, items, req.ShippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrUserUnverified):
			return errorJSON(c, fiber.StatusServiceUnavailable, "User service unavailable, try again later")
		}
		log.Printf("Error creating order: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders lists orders with skip/limit pagination and an optional
// user_id filter.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	userID := c.Query("user_id")

	orders, err := h.service.List(skip, limit, userID)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not list orders")
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves a single order by ID.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Order not found")
		}
		log.Printf("Error getting order: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleUpdateOrder overwrites the supplied fields of an existing order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	order, err := h.service.Update(c.Params("id"), services.OrderUpdate{
		Status:          req.Status,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return errorJSON(c, fiber.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrInvalidStatus):
			return errorJSON(c, fiber.StatusBadRequest,
				"Invalid status. Must be one of: "+strings.Join(models.OrderStatuses, ", "))
		}
		log.Printf("Error updating order: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not update order")
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Order not found")
		}
		log.Printf("Error deleting order: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not delete order")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetUserOrders returns all orders for one user, unpaginated. The
// result may be empty; the user itself is not looked up.
func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetByUser(c.Params("user_id"))
	if err != nil {
		log.Printf("Error listing user orders: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not list orders")
	}
	return c.JSON(orders)
}

// HandleMetrics reports the order registry metrics.
func (h *OrderHandler) HandleMetrics(c *fiber.Ctx) error {
	total, err := h.service.Count()
	if err != nil {
		log.Printf("Error counting orders: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not collect metrics")
	}
	byStatus, err := h.service.CountByStatus()
	if err != nil {
		log.Printf("Error counting orders by status: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not collect metrics")
	}
	return c.JSON(fiber.Map{
		"total_orders":     total,
		"orders_by_status": byStatus,
		"service":          "order-service",
	})
}
