package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "ok"
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		dbStatus = "unreachable"
	}
	utils.Success(c, 200, "Service healthy", gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}
