package utils

import "errors"

// Common application errors used across services.
var (
	ErrUnauthorized       = errors.New("UNAUTHORIZED")
	ErrForbidden          = errors.New("FORBIDDEN")
	ErrNotFound           = errors.New("NOT_FOUND")
	ErrValidation         = errors.New("VALIDATION_ERROR")
	ErrPaymentDeclined    = errors.New("PAYMENT_DECLINED")
	ErrGatewayUnavailable = errors.New("GATEWAY_UNAVAILABLE")
	ErrSync               = errors.New("SYNC_ERROR")
	ErrInvalidTransition  = errors.New("INVALID_TRANSITION")
	ErrAlreadyPaid        = errors.New("ALREADY_PAID")
	ErrEmptyCart          = errors.New("EMPTY_CART")
	ErrOutOfStock         = errors.New("OUT_OF_STOCK")
	ErrQuantityOutOfRange = errors.New("QUANTITY_OUT_OF_RANGE")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrInvalidCoupon      = errors.New("INVALID_COUPON")
)
