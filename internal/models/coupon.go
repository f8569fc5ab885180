package models

// CouponResult is the row returned by the validate_coupon stored function.
// The validation rules (active dates, usage limits, minimum total, audience)
// live entirely in the database.
type CouponResult struct {
	Valid         bool    `db:"valid" json:"valid"`
	DiscountCents int64   `db:"discount_cents" json:"discountCents"`
	Reason        *string `db:"reason" json:"reason,omitempty"`
}
