package repository

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/models"
)

// SyncJobRepository handles the outbox table for best-effort side pipelines.
type SyncJobRepository struct {
	db *sqlx.DB
}

// NewSyncJobRepository creates a new SyncJobRepository.
func NewSyncJobRepository(db *sqlx.DB) *SyncJobRepository {
	return &SyncJobRepository{db: db}
}

// Enqueue inserts a pending job. The dedupe key makes re-enqueueing the same
// logical work a no-op, so a retried status update cannot fan out twice.
func (r *SyncJobRepository) Enqueue(jobType models.SyncJobType, dedupeKey string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	const q = `
        INSERT INTO sync_jobs (job_type, dedupe_key, payload, status)
        VALUES ($1, $2, $3, 'pending')
        ON CONFLICT (dedupe_key) DO NOTHING`
	_, err = r.db.Exec(q, jobType, dedupeKey, raw)
	return err
}

// GetPending returns jobs due for processing, oldest first.
func (r *SyncJobRepository) GetPending(limit int) ([]models.SyncJob, error) {
	const q = `
        SELECT * FROM sync_jobs
        WHERE status = 'pending'
        AND (next_retry_at IS NULL OR next_retry_at <= NOW())
        ORDER BY created_at
        LIMIT $1`
	var jobs []models.SyncJob
	if err := r.db.Select(&jobs, q, limit); err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkDone marks a job as successfully processed.
func (r *SyncJobRepository) MarkDone(id int) error {
	const q = `UPDATE sync_jobs SET status = 'done', updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id)
	return err
}

// MarkFailed records a failed attempt. The job stays pending with a retry
// time until attempts reach maxAttempts, after which it is parked as failed.
func (r *SyncJobRepository) MarkFailed(id int, attempt int, maxAttempts int, lastError string, nextRetry time.Time) error {
	if attempt >= maxAttempts {
		const q = `
            UPDATE sync_jobs SET status = 'failed', attempts = $2, last_error = $3, updated_at = NOW()
            WHERE id = $1`
		_, err := r.db.Exec(q, id, attempt, lastError)
		return err
	}
	const q = `
        UPDATE sync_jobs SET attempts = $2, last_error = $3, next_retry_at = $4, updated_at = NOW()
        WHERE id = $1`
	_, err := r.db.Exec(q, id, attempt, lastError, nextRetry)
	return err
}
