package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

// CouponRepository invokes the validate_coupon stored function. All coupon
// rules (date range, usage limits, minimum total, audience) live in the
// database; this layer only marshals inputs and maps the result row.
type CouponRepository struct {
	db *sqlx.DB
}

// NewCouponRepository creates a new CouponRepository.
func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// Validate calls validate_coupon(code, user_id, order_total_cents, user_type).
// userID may be nil for anonymous validation.
func (r *CouponRepository) Validate(code string, userID *int, orderTotalCents int64, userType string) (*models.CouponResult, error) {
	const q = `SELECT valid, discount_cents, reason FROM validate_coupon($1, $2, $3, $4)`
	var result models.CouponResult
	if err := r.db.Get(&result, q, code, userID, orderTotalCents, userType); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecordUse increments the usage counter for a redeemed coupon.
func (r *CouponRepository) RecordUse(code string, userID int, orderID int) error {
	const q = `
        INSERT INTO coupon_uses (coupon_code, user_id, order_id)
        VALUES ($1, $2, $3)`
	_, err := r.db.Exec(q, code, userID, orderID)
	return err
}
