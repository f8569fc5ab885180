package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/service"
)

// DocumentSyncWorker drains the sync job outbox: Zoho documents, customer
// pushes, and order SMS. Jobs that fail are retried with backoff until the
// attempt cap, after which they stay failed for operator review.
type DocumentSyncWorker struct {
	syncService *service.SyncService
	syncJobRepo *repository.SyncJobRepository
	interval    time.Duration
	maxAttempts int
}

// NewDocumentSyncWorker constructs a DocumentSyncWorker.
func NewDocumentSyncWorker(
	syncService *service.SyncService,
	syncJobRepo *repository.SyncJobRepository,
	interval time.Duration,
	maxAttempts int,
) *DocumentSyncWorker {
	return &DocumentSyncWorker{
		syncService: syncService,
		syncJobRepo: syncJobRepo,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

// Start begins the periodic drain loop until context is canceled.
func (w *DocumentSyncWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting document sync worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Document sync worker stopped")
			return
		}
	}
}

func (w *DocumentSyncWorker) run(ctx context.Context) {
	jobs, err := w.syncJobRepo.GetPending(50)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get pending sync jobs")
		return
	}
	if len(jobs) == 0 {
		return
	}
	log.Info().Int("count", len(jobs)).Msg("Processing sync jobs")

	for i := range jobs {
		// Respect cancellation between jobs
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, &jobs[i])
		}
	}
}

func (w *DocumentSyncWorker) processJob(ctx context.Context, job *models.SyncJob) {
	err := w.syncService.ProcessJob(ctx, job)
	if err == nil {
		if err := w.syncJobRepo.MarkDone(job.ID); err != nil {
			log.Error().Err(err).Int("job_id", job.ID).Msg("Failed to mark sync job done")
		}
		return
	}

	attempt := job.Attempts + 1
	nextRetry := time.Now().Add(backoff(attempt))
	log.Error().
		Err(err).
		Int("job_id", job.ID).
		Str("job_type", string(job.JobType)).
		Int("attempt", attempt).
		Msg("Sync job failed")

	if markErr := w.syncJobRepo.MarkFailed(job.ID, attempt, w.maxAttempts, err.Error(), nextRetry); markErr != nil {
		log.Error().Err(markErr).Int("job_id", job.ID).Msg("Failed to mark sync job failed")
	}
}

// backoff doubles per attempt starting at one minute, capped at one hour.
func backoff(attempt int) time.Duration {
	d := time.Minute << (attempt - 1)
	if d > time.Hour || d <= 0 {
		return time.Hour
	}
	return d
}
