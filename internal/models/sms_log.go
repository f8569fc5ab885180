package models

import "time"

// SMSLog records every outbound SMS attempt, delivered or not.
type SMSLog struct {
	ID         int       `db:"id" json:"id"`
	ToNumber   string    `db:"to_number" json:"to"`
	Body       string    `db:"body" json:"body"`
	OrderID    *int      `db:"order_id" json:"orderId,omitempty"`
	MessageSID *string   `db:"message_sid" json:"messageSid,omitempty"`
	Delivered  bool      `db:"delivered" json:"delivered"`
	ErrorText  *string   `db:"error_text" json:"error,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
