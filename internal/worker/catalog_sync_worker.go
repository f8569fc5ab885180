package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/service"
)

// CatalogSyncWorker periodically pulls item updates from Zoho Books so local
// catalog prices track the books of record.
type CatalogSyncWorker struct {
	syncService *service.SyncService
	interval    time.Duration
}

// NewCatalogSyncWorker constructs a CatalogSyncWorker.
func NewCatalogSyncWorker(syncService *service.SyncService, interval time.Duration) *CatalogSyncWorker {
	return &CatalogSyncWorker{syncService: syncService, interval: interval}
}

// Start begins the periodic pull loop until context is canceled.
func (w *CatalogSyncWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog sync worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog sync worker stopped")
			return
		}
	}
}

func (w *CatalogSyncWorker) run(ctx context.Context) {
	updated, err := w.syncService.PullItems(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Catalog pull from Zoho failed")
		return
	}
	if updated > 0 {
		log.Info().Int("updated", updated).Msg("Catalog refreshed from Zoho")
	}
}
