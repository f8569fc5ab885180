package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/formula"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// handleError maps service errors to HTTP responses with stable codes.
// Unknown errors become a generic 500; detail stays in the logs.
func handleError(c *gin.Context, err error) {
	var missingVar *service.MissingVariableError
	var validationErr *formula.ValidationError
	var evalErr *formula.EvaluationError

	switch {
	case errors.Is(err, utils.ErrUnauthorized):
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, utils.ErrForbidden):
		utils.Error(c, 403, "FORBIDDEN", "You do not have access to this resource")
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "NOT_FOUND", "Resource not found")
	case errors.Is(err, utils.ErrValidation):
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, utils.ErrEmptyCart):
		utils.Error(c, 400, "EMPTY_CART", "Cart is empty")
	case errors.Is(err, utils.ErrOutOfStock):
		utils.Error(c, 400, "OUT_OF_STOCK", "Requested quantity exceeds available stock")
	case errors.Is(err, utils.ErrQuantityOutOfRange):
		utils.Error(c, 400, "QUANTITY_OUT_OF_RANGE", "Quantity is outside the allowed order range")
	case errors.Is(err, utils.ErrAlreadyPaid):
		utils.Error(c, 400, "ALREADY_PAID", "Order has already been paid")
	case errors.Is(err, utils.ErrInvalidCoupon):
		utils.Error(c, 400, "INVALID_COUPON", "Coupon is not valid for this order")
	case errors.Is(err, utils.ErrInvalidTransition):
		utils.Error(c, 409, "INVALID_TRANSITION", "Requested status change is not allowed")
	case errors.Is(err, utils.ErrPaymentDeclined):
		utils.Error(c, 402, "PAYMENT_DECLINED", "Payment was declined")
	case errors.Is(err, utils.ErrGatewayUnavailable):
		utils.Error(c, 503, "GATEWAY_UNAVAILABLE", "Payment service is temporarily unavailable, please retry")
	case errors.Is(err, utils.ErrSync):
		utils.Error(c, 502, "SYNC_ERROR", "External sync failed")
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, utils.ErrEmailTaken):
		utils.Error(c, 400, "EMAIL_TAKEN", "Email is already registered")
	case errors.As(err, &missingVar):
		utils.Error(c, 400, "VALIDATION_ERROR", "Missing value for "+missingVar.LabelEn)
	case errors.As(err, &validationErr):
		utils.Error(c, 400, "VALIDATION_ERROR", validationErr.Error())
	case errors.As(err, &evalErr):
		utils.Error(c, 400, "EVALUATION_ERROR", "Formula could not be evaluated")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
