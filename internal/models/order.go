package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// statusRank orders the forward-only fulfillment states. Cancelled is not
// ranked: it is reachable from any non-terminal state.
var statusRank = map[OrderStatus]int{
	OrderPending:    0,
	OrderConfirmed:  1,
	OrderProcessing: 2,
	OrderShipped:    3,
	OrderDelivered:  4,
}

// Valid reports whether s is a known fulfillment status.
func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok || s == OrderCancelled
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is legal. Fulfillment
// states only move forward; cancelled is allowed from any state except
// delivered and cancelled itself.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if next == OrderCancelled {
		return s != OrderDelivered && s != OrderCancelled
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// CanTransition reports whether a payment status change is legal.
// paid is reachable from pending exactly once; refunded only from paid.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentPaid || next == PaymentFailed
	case PaymentFailed:
		// A failed capture may be retried.
		return next == PaymentPaid
	case PaymentPaid:
		return next == PaymentRefunded
	default:
		return false
	}
}

// Order is a customer order. Monetary fields are cents. Zoho identifiers are
// written only by the document synchronizer.
type Order struct {
	ID                  int           `db:"id" json:"id"`
	OrderNumber         string        `db:"order_number" json:"orderNumber"`
	UserID              int           `db:"user_id" json:"userId"`
	Status              OrderStatus   `db:"status" json:"status"`
	PaymentStatus       PaymentStatus `db:"payment_status" json:"paymentStatus"`
	SubtotalCents       int64         `db:"subtotal_cents" json:"subtotalCents"`
	TaxCents            int64         `db:"tax_cents" json:"taxCents"`
	DeliveryFeeCents    int64         `db:"delivery_fee_cents" json:"deliveryFeeCents"`
	DiscountCents       int64         `db:"discount_cents" json:"discountCents"`
	TotalCents          int64         `db:"total_cents" json:"totalCents"`
	CouponCode          *string       `db:"coupon_code" json:"couponCode,omitempty"`
	DeliveryAddress     string        `db:"delivery_address" json:"deliveryAddress"`
	BillingAddress      string        `db:"billing_address" json:"billingAddress"`
	TransactionID       *string       `db:"transaction_id" json:"transactionId,omitempty"`
	AuthCode            *string       `db:"auth_code" json:"-"`
	ReceiptURL          *string       `db:"receipt_url" json:"receiptUrl,omitempty"`
	ZohoInvoiceID       *string       `db:"zoho_invoice_id" json:"zohoInvoiceId,omitempty"`
	ZohoPurchaseOrderID *string       `db:"zoho_purchase_order_id" json:"zohoPurchaseOrderId,omitempty"`
	ZohoBooksID         *string       `db:"zoho_books_id" json:"zohoBooksId,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updatedAt"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem is a line item frozen at order creation: unit price is the
// tier price that applied to the buyer at that moment.
type OrderItem struct {
	ID             int    `db:"id" json:"id"`
	OrderID        int    `db:"order_id" json:"-"`
	ProductID      int    `db:"product_id" json:"productId"`
	ProductName    string `db:"product_name" json:"productName"`
	SKU            string `db:"sku" json:"sku"`
	Quantity       int    `db:"quantity" json:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents" json:"unitPriceCents"`
	LineTotalCents int64  `db:"line_total_cents" json:"lineTotalCents"`
}
