package handlers

import (
	"net/http"

	"kapirun-api/internal/database"
	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewHealthHandler(db *gorm.DB, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// Check reports service liveness plus the database state. A nil db means
// the store was intentionally left unconfigured, which is not an error.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	statusCode := http.StatusOK

	if h.db == nil {
		dbStatus = "not_configured"
	} else if err := database.HealthCheck(h.db); err != nil {
		h.logger.Error("Database health check failed", "error", err)
		status = "error"
		dbStatus = "error"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":   status,
		"database": dbStatus,
		"service":  "kapirun-api",
	})
}
