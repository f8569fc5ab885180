package service

import (
	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// CouponService fronts the validate_coupon stored function.
type CouponService struct {
	couponRepo *repository.CouponRepository
}

// NewCouponService constructs a CouponService.
func NewCouponService(couponRepo *repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Validate checks a coupon against the database rules. A transport failure
// surfaces as a validation error; the caller never sees raw SQL errors.
func (s *CouponService) Validate(code string, userID *int, orderTotalCents int64, tier models.AccountType) (*models.CouponResult, error) {
	if code == "" {
		return nil, utils.ErrValidation
	}
	result, err := s.couponRepo.Validate(code, userID, orderTotalCents, string(tier))
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("Coupon validation query failed")
		return nil, utils.ErrValidation
	}
	return result, nil
}

// RecordUse records a redeemed coupon against an order.
func (s *CouponService) RecordUse(code string, userID, orderID int) error {
	return s.couponRepo.RecordUse(code, userID, orderID)
}
