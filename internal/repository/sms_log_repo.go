package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

// SMSLogRepository records every outbound SMS attempt.
type SMSLogRepository struct {
	db *sqlx.DB
}

// NewSMSLogRepository creates a new SMSLogRepository.
func NewSMSLogRepository(db *sqlx.DB) *SMSLogRepository {
	return &SMSLogRepository{db: db}
}

// Create inserts one log entry.
func (r *SMSLogRepository) Create(entry *models.SMSLog) error {
	const q = `
        INSERT INTO sms_logs (to_number, body, order_id, message_sid, delivered, error_text)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	return r.db.QueryRowx(q,
		entry.ToNumber, entry.Body, entry.OrderID, entry.MessageSID, entry.Delivered, entry.ErrorText,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// GetByOrder returns the SMS history for one order, newest first.
func (r *SMSLogRepository) GetByOrder(orderID int) ([]models.SMSLog, error) {
	const q = `SELECT * FROM sms_logs WHERE order_id = $1 ORDER BY created_at DESC`
	var logs []models.SMSLog
	if err := r.db.Select(&logs, q, orderID); err != nil {
		return nil, err
	}
	return logs, nil
}
