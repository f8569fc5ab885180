package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

// OrderRepository handles data access for orders and order items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists an order and its items in one transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const orderQ = `
        INSERT INTO orders (
            order_number, user_id, status, payment_status,
            subtotal_cents, tax_cents, delivery_fee_cents, discount_cents, total_cents,
            coupon_code, delivery_address, billing_address
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRowx(orderQ,
		order.OrderNumber, order.UserID, order.Status, order.PaymentStatus,
		order.SubtotalCents, order.TaxCents, order.DeliveryFeeCents,
		order.DiscountCents, order.TotalCents,
		order.CouponCode, order.DeliveryAddress, order.BillingAddress,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const itemQ = `
        INSERT INTO order_items (order_id, product_id, product_name, sku, quantity, unit_price_cents, line_total_cents)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowx(itemQ,
			item.OrderID, item.ProductID, item.ProductName, item.SKU,
			item.Quantity, item.UnitPriceCents, item.LineTotalCents,
		).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID returns one order with its items.
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	const q = `SELECT * FROM orders WHERE id = $1 LIMIT 1`
	var order models.Order
	if err := r.db.Get(&order, q, id); err != nil {
		return nil, err
	}
	if err := r.loadItems(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByUser returns a user's orders, newest first, with items.
func (r *OrderRepository) GetByUser(userID int) ([]models.Order, error) {
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	var orders []models.Order
	if err := r.db.Select(&orders, q, userID); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.loadItems(&orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// ListAdmin returns orders for the back-office with optional status filter
// and pagination.
func (r *OrderRepository) ListAdmin(status string, page, limit int) ([]models.Order, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	const countQ = `SELECT COUNT(1) FROM orders WHERE ($1 = '' OR status = $1)`
	var total int
	if err := r.db.Get(&total, countQ, status); err != nil {
		return nil, 0, err
	}

	const listQ = `
        SELECT * FROM orders
        WHERE ($1 = '' OR status = $1)
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	var orders []models.Order
	if err := r.db.Select(&orders, listQ, status, limit, offset); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus persists only the supplied status fields. Passing nil leaves
// the corresponding column untouched. Transition legality is enforced by the
// service layer before calling this.
func (r *OrderRepository) UpdateStatus(id int, status *models.OrderStatus, paymentStatus *models.PaymentStatus) error {
	const q = `
        UPDATE orders SET
            status = COALESCE($2, status),
            payment_status = COALESCE($3, payment_status),
            updated_at = NOW()
        WHERE id = $1`
	res, err := r.db.Exec(q, id, status, paymentStatus)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkPaid records a successful capture: payment metadata plus the
// confirmed/paid transition in a single statement. The WHERE clause refuses
// to touch an order that is already paid, which makes a double capture a
// visible error instead of a silent overwrite.
func (r *OrderRepository) MarkPaid(id int, transactionID, authCode, receiptURL string) error {
	const q = `
        UPDATE orders SET
            status = 'confirmed',
            payment_status = 'paid',
            transaction_id = $2,
            auth_code = $3,
            receipt_url = $4,
            updated_at = NOW()
        WHERE id = $1 AND payment_status <> 'paid'`
	res, err := r.db.Exec(q, id, transactionID, authCode, receiptURL)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ApplyDiscount records a validated coupon against an unpaid order and
// lowers the total. Paid orders are immutable; the WHERE clause enforces it.
func (r *OrderRepository) ApplyDiscount(id int, couponCode string, discountCents int64) error {
	const q = `
        UPDATE orders SET
            coupon_code = $2,
            discount_cents = $3,
            total_cents = subtotal_cents + tax_cents + delivery_fee_cents - $3,
            updated_at = NOW()
        WHERE id = $1 AND payment_status <> 'paid'`
	res, err := r.db.Exec(q, id, couponCode, discountCents)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetZohoInvoiceID records the Books invoice id created by the synchronizer.
func (r *OrderRepository) SetZohoInvoiceID(id int, invoiceID string) error {
	const q = `UPDATE orders SET zoho_invoice_id = $2, zoho_books_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, invoiceID)
	return err
}

// SetZohoPurchaseOrderID records the Books purchase order id.
func (r *OrderRepository) SetZohoPurchaseOrderID(id int, poID string) error {
	const q = `UPDATE orders SET zoho_purchase_order_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, poID)
	return err
}

func (r *OrderRepository) loadItems(order *models.Order) error {
	const q = `SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`
	return r.db.Select(&order.Items, q, order.ID)
}
