package models

import "time"

// CartItem is one (user, product) row in a customer's cart. The pair is
// unique; adding the same product again increments the quantity in place.
type CartItem struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"-"`
	ProductID int       `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CartLine is a cart item joined with its product and the unit price
// resolved for the viewing customer's account tier.
type CartLine struct {
	CartItem
	Product        Product `db:"-" json:"product"`
	UnitPriceCents int64   `db:"-" json:"unitPriceCents"`
	LineTotalCents int64   `db:"-" json:"lineTotalCents"`
}
