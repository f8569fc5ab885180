package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/middleware"
	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// OrderHandler handles customer-facing and admin order endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	customer := middleware.GetCustomer(c)

	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	order, err := h.orderService.CreateFromCart(customer, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Order created", order)
}

// GetOrders handles GET /v1/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	customer := middleware.GetCustomer(c)
	orders, err := h.orderService.ListOrders(customer.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Orders retrieved", orders)
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	customer := middleware.GetCustomer(c)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(orderID, customer)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Order retrieved", order)
}

// ListOrdersAdmin handles GET /v1/admin/orders
func (h *OrderHandler) ListOrdersAdmin(c *gin.Context) {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, err := h.orderService.ListOrdersAdmin(status, page, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessWithPagination(c, 200, "Orders retrieved", orders, page, limit, total)
}

// UpdateOrderStatus handles PUT /v1/admin/orders/:id/status. Either field may
// be omitted; supplied values must move their machine forward.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var req struct {
		Status        *string `json:"status"`
		PaymentStatus *string `json:"paymentStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.Status == nil && req.PaymentStatus == nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "No status fields provided")
		return
	}

	var newStatus *models.OrderStatus
	if req.Status != nil {
		s := models.OrderStatus(*req.Status)
		if !s.Valid() {
			utils.Error(c, 400, "VALIDATION_ERROR", "Unknown order status")
			return
		}
		newStatus = &s
	}
	var newPaymentStatus *models.PaymentStatus
	if req.PaymentStatus != nil {
		p := models.PaymentStatus(*req.PaymentStatus)
		if !p.Valid() {
			utils.Error(c, 400, "VALIDATION_ERROR", "Unknown payment status")
			return
		}
		newPaymentStatus = &p
	}

	order, err := h.orderService.UpdateStatus(orderID, newStatus, newPaymentStatus)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Order status updated", order)
}
