package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

// CartRepository handles data access for cart items.
type CartRepository struct {
	db *sqlx.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

// AddItem inserts a cart row or atomically increments the quantity when the
// (user, product) pair already exists. Both the increment and the limit
// check happen inside one statement, so concurrent adds can neither lose
// updates nor push a row past maxQuantity. A refused increment surfaces as
// sql.ErrNoRows.
func (r *CartRepository) AddItem(userID, productID, quantity, maxQuantity int) (*models.CartItem, error) {
	const q = `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, product_id) DO UPDATE SET
            quantity = cart_items.quantity + EXCLUDED.quantity,
            updated_at = NOW()
        WHERE cart_items.quantity + EXCLUDED.quantity <= $4
        RETURNING id, user_id, product_id, quantity, created_at, updated_at`
	var item models.CartItem
	if err := r.db.Get(&item, q, userID, productID, quantity, maxQuantity); err != nil {
		return nil, err
	}
	return &item, nil
}

// SetQuantity replaces the quantity of an existing cart row.
func (r *CartRepository) SetQuantity(userID, productID, quantity int) (*models.CartItem, error) {
	const q = `
        UPDATE cart_items SET quantity = $3, updated_at = NOW()
        WHERE user_id = $1 AND product_id = $2
        RETURNING id, user_id, product_id, quantity, created_at, updated_at`
	var item models.CartItem
	if err := r.db.Get(&item, q, userID, productID, quantity); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one cart row.
func (r *CartRepository) RemoveItem(userID, productID int) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`
	_, err := r.db.Exec(q, userID, productID)
	return err
}

// Clear empties a user's cart.
func (r *CartRepository) Clear(userID int) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1`
	_, err := r.db.Exec(q, userID)
	return err
}

// GetItems returns all cart rows for a user, oldest first.
func (r *CartRepository) GetItems(userID int) ([]models.CartItem, error) {
	const q = `SELECT * FROM cart_items WHERE user_id = $1 ORDER BY created_at`
	var items []models.CartItem
	if err := r.db.Select(&items, q, userID); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns one cart row for a (user, product) pair.
func (r *CartRepository) GetItem(userID, productID int) (*models.CartItem, error) {
	const q = `SELECT * FROM cart_items WHERE user_id = $1 AND product_id = $2 LIMIT 1`
	var item models.CartItem
	if err := r.db.Get(&item, q, userID, productID); err != nil {
		return nil, err
	}
	return &item, nil
}
