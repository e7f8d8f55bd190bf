package handlers

import (
	"context"
	"net/http"
	"time"

	"freelance_backend/internal/logger"
	"freelance_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// readyTimeout - сколько ждем ответа БД в /ready
const readyTimeout = 2 * time.Second

// Pinger проверяет доступность базы данных
type Pinger interface {
	Ping(ctx context.Context, db *gorm.DB) error
}

// SQLPinger пингует пул соединений, стоящий за *gorm.DB
type SQLPinger struct{}

func (SQLPinger) Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type HealthHandler struct {
	*BaseHandler
	pinger  Pinger
	started time.Time
}

func NewHealthHandler(base *BaseHandler, pinger Pinger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		pinger:      pinger,
		started:     time.Now(),
	}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health - процесс жив
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready - процесс готов обслуживать запросы: база отвечает.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx, h.GetDB(c)); err != nil {
		logger.CtxWithError(c.Request.Context(), "readiness check failed", err)
		h.HandleServiceError(c, apperrors.ErrDatabaseUnavailable.WithError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
