package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// ZohoHandler exposes admin triggers for Zoho synchronization.
type ZohoHandler struct {
	syncService *service.SyncService
}

// NewZohoHandler constructs a ZohoHandler.
func NewZohoHandler(syncService *service.SyncService) *ZohoHandler {
	return &ZohoHandler{syncService: syncService}
}

// SyncCustomer handles POST /v1/admin/zoho/customers/:id/sync
func (h *ZohoHandler) SyncCustomer(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid customer id")
		return
	}

	direction := c.DefaultQuery("direction", "to_zoho")
	if direction != "to_zoho" && direction != "from_zoho" {
		utils.Error(c, 400, "VALIDATION_ERROR", "direction must be to_zoho or from_zoho")
		return
	}

	if err := h.syncService.SyncCustomer(c.Request.Context(), customerID, direction); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Customer synchronized", nil)
}

// SyncItem handles POST /v1/admin/zoho/items/:id/sync
func (h *ZohoHandler) SyncItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	if err := h.syncService.SyncItem(c.Request.Context(), productID); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Item synchronized", nil)
}

// PullItems handles POST /v1/admin/zoho/items/pull
func (h *ZohoHandler) PullItems(c *gin.Context) {
	updated, err := h.syncService.PullItems(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Items pulled", gin.H{"updated": updated})
}

// SyncOrderDocuments handles POST /v1/admin/orders/:id/sync. Runs the
// document synchronizer inline instead of waiting for the worker.
func (h *ZohoHandler) SyncOrderDocuments(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	result := h.syncService.ProcessOrderDocuments(c.Request.Context(), orderID)
	if !result.Success {
		utils.Error(c, 502, "SYNC_ERROR", "Document synchronization failed")
		return
	}
	utils.Success(c, 200, "Documents synchronized", result)
}
