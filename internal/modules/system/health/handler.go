// Package health exposes the liveness endpoint.
package health

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/pkg/response"
)

// Handler answers health probes.
type Handler struct {
	db      *gorm.DB
	started time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, started: time.Now()}
}

// RegisterRoutes mounts /health.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "down"
	}
	response.OK(c, gin.H{
		"status": "ok",
		"db":     dbStatus,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
