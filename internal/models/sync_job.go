package models

import (
	"encoding/json"
	"time"
)

type SyncJobType string
type SyncJobStatus string

const (
	JobOrderDocuments SyncJobType = "order_documents"
	JobCustomerSync   SyncJobType = "customer_sync"
	JobOrderSMS       SyncJobType = "order_sms"
)

const (
	JobPending SyncJobStatus = "pending"
	JobDone    SyncJobStatus = "done"
	JobFailed  SyncJobStatus = "failed"
)

// SyncJob is one outbox row for a best-effort side pipeline (Zoho document
// creation, customer sync, order SMS). Jobs are enqueued in the same flow
// that performs the primary write and drained by the sync worker, so a
// side-pipeline failure never unwinds the primary operation.
type SyncJob struct {
	ID          int             `db:"id"`
	JobType     SyncJobType     `db:"job_type"`
	DedupeKey   string          `db:"dedupe_key"`
	Payload     json.RawMessage `db:"payload"`
	Status      SyncJobStatus   `db:"status"`
	Attempts    int             `db:"attempts"`
	NextRetryAt *time.Time      `db:"next_retry_at"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// OrderDocumentsPayload is the payload for JobOrderDocuments jobs.
type OrderDocumentsPayload struct {
	OrderID int `json:"orderId"`
}

// CustomerSyncPayload is the payload for JobCustomerSync jobs.
type CustomerSyncPayload struct {
	CustomerID int    `json:"customerId"`
	Direction  string `json:"direction"` // "to_zoho" or "from_zoho"
}

// OrderSMSPayload is the payload for JobOrderSMS jobs.
type OrderSMSPayload struct {
	OrderID       int    `json:"orderId"`
	Status        string `json:"status"`
	CustomMessage string `json:"customMessage,omitempty"`
}
