package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/middleware"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// CouponHandler handles coupon validation.
type CouponHandler struct {
	couponService *service.CouponService
}

// NewCouponHandler constructs a CouponHandler.
func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// ValidateCoupon handles POST /v1/coupons/validate. The result is advisory:
// checkout revalidates and applies the discount server-side.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	customer := middleware.GetCustomer(c)

	var req struct {
		Code            string `json:"code" binding:"required"`
		OrderTotalCents int64  `json:"orderTotalCents" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.couponService.Validate(req.Code, &customer.ID, req.OrderTotalCents, customer.AccountType)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Coupon checked", result)
}
