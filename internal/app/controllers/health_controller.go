package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/error/response"
	"go.uber.org/zap"
)

// HealthController answers liveness and readiness probes
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler dispatching to the named method
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// Ping is the liveness probe
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /ping [get]
func (h *HealthController) Ping() {
	response.Success(h.Ctx, gin.H{"message": "pong"})
}

// Status checks the storage backend and, when enabled, Redis
// @Summary      Readiness status
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  ErrorResponse
// @Router       /health/status [get]
func (h *HealthController) Status() {
	ctx, cancel := context.WithTimeout(h.Ctx.Request.Context(), 3*time.Second)
	defer cancel()

	cfg := h.Container.GetConfig()
	if err := h.Container.GetStore().Ping(ctx); err != nil {
		h.Container.GetLogger().Warn("storage backend ping failed", zap.Error(err))
		response.Fail(h.Ctx, code.ErrBackendUnavailable)
		return
	}

	redisStatus := "disabled"
	if redisService, ok := h.Container.GetService("redis").(services.InterfaceRedisService); ok {
		redisStatus = "healthy"
		if err := redisService.Ping(ctx); err != nil {
			redisStatus = "unhealthy"
		}
	}

	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"backend": string(cfg.Backend()),
		"redis":   redisStatus,
	})
}
