package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/middleware"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// CheckoutHandler handles the payment endpoint.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles POST /v1/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	customer := middleware.GetCustomer(c)

	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), customer, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Payment processed", result)
}
