package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
	"github.com/VerdeSupply/storefront_api/pkg/zoho"
)

// WebhookHandler receives inbound Zoho webhooks. The endpoint is unauthenticated
// but HMAC-signed; requests with a bad signature are rejected before parsing.
type WebhookHandler struct {
	syncService   *service.SyncService
	webhookSecret string
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(syncService *service.SyncService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{syncService: syncService, webhookSecret: webhookSecret}
}

// HandleZohoWebhook handles POST /webhook/zoho
func (h *WebhookHandler) HandleZohoWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Unable to read request body")
		return
	}

	signature := c.GetHeader("X-Zoho-Signature")
	if !utils.VerifySignature(body, signature, h.webhookSecret) {
		log.Warn().Str("ip", c.ClientIP()).Msg("Zoho webhook signature mismatch")
		utils.Error(c, 401, "UNAUTHORIZED", "Invalid webhook signature")
		return
	}

	var event zoho.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid webhook payload")
		return
	}

	if err := h.syncService.ProcessWebhookEvent(c.Request.Context(), &event); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Webhook processed", nil)
}
