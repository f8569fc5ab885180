package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// SMSHandler handles admin SMS endpoints.
type SMSHandler struct {
	notificationService *service.NotificationService
	orderService        *service.OrderService
	authService         *service.AuthService
}

// NewSMSHandler constructs an SMSHandler.
func NewSMSHandler(notificationService *service.NotificationService, orderService *service.OrderService, authService *service.AuthService) *SMSHandler {
	return &SMSHandler{
		notificationService: notificationService,
		orderService:        orderService,
		authService:         authService,
	}
}

// SendTestSMS handles POST /v1/admin/sms/test
func (h *SMSHandler) SendTestSMS(c *gin.Context) {
	var req struct {
		To   string `json:"to" binding:"required"`
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	log, err := h.notificationService.SendSMS(c.Request.Context(), req.To, req.Body, nil)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "SMS sent", log)
}

// SendOrderStatusSMS handles POST /v1/admin/orders/:id/sms. Sends the status
// notification for the order, optionally with a custom message body.
func (h *SMSHandler) SendOrderStatusSMS(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	order, err := h.orderService.GetOrderAdmin(orderID)
	if err != nil {
		handleError(c, err)
		return
	}
	customer, err := h.authService.GetProfile(order.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	log, err := h.notificationService.SendOrderStatusSMS(c.Request.Context(), order, customer, req.Message)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "SMS sent", log)
}

// GetOrderSMSLogs handles GET /v1/admin/orders/:id/sms
func (h *SMSHandler) GetOrderSMSLogs(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	logs, err := h.notificationService.GetOrderLogs(orderID)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "SMS logs retrieved", logs)
}
