package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/app/middleware"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/error/response"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"go.uber.org/zap"
)

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Code    int    `json:"code" example:"101000"`
	Message string `json:"message" example:"Professional not found"`
	Error   string `json:"error,omitempty"`
}

// respondError maps service errors to their status; anything else is a 500
// whose detail is shown only outside production.
func respondError(ctx *gin.Context, c *container.ServiceContainer, err error) {
	switch {
	case errors.Is(err, services.ErrProfessionalNotFound):
		response.Fail(ctx, code.ErrProfessionalNotFound)
	case errors.Is(err, services.ErrTaskSummaryNotFound):
		response.Fail(ctx, code.ErrTaskSummaryNotFound)
	case errors.Is(err, services.ErrForbidden):
		response.Fail(ctx, code.ErrForbidden)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Fail(ctx, code.ErrInvalidCredentials)
	case errors.Is(err, store.ErrInvalidDrill):
		response.Fail(ctx, code.ErrDrillInvalid)
	default:
		c.GetLogger().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(err),
		)
		_ = ctx.Error(err)
		response.ServerError(ctx, err, !c.GetConfig().IsProduction())
	}
}

// actorOrAbort returns the authenticated caller, answering 401 when the
// authentication middleware did not run.
func actorOrAbort(ctx *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		response.Fail(ctx, code.ErrTokenMissing)
	}
	return actor, ok
}
