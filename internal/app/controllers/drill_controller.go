package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/error/response"
)

// DrillController handles the active drill
type DrillController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDrillController creates a drill controller
func NewDrillController(ctx *gin.Context, container *container.ServiceContainer) *DrillController {
	return &DrillController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDrillFunc returns a gin handler dispatching to the named method
func HandleDrillFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDrillController(ctx, container)

		switch method {
		case "getActiveDrill":
			controller.GetActiveDrill()
		case "setActiveDrill":
			controller.SetActiveDrill()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

func (c *DrillController) service() services.InterfaceDrillService {
	return c.Container.GetService("drill").(services.InterfaceDrillService)
}

// GetActiveDrill returns the active drill; drill is null when none is set
// @Summary      Get active drill
// @Tags         Drills
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /drills/active [get]
// @Security     BearerAuth
func (c *DrillController) GetActiveDrill() {
	drill, err := c.service().GetActiveDrill(c.Ctx.Request.Context())
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}
	response.Success(c.Ctx, gin.H{"drill": drill})
}

// SetActiveDrill replaces the active drill with the request body
// @Summary      Replace active drill
// @Tags         Drills
// @Accept       json
// @Produce      json
// @Param        request body object true "Drill payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /drills/active [put]
// @Security     BearerAuth
func (c *DrillController) SetActiveDrill() {
	actor, ok := actorOrAbort(c.Ctx)
	if !ok {
		return
	}

	body, err := c.Ctx.GetRawData()
	if err != nil {
		response.Fail(c.Ctx, code.ErrBind)
		return
	}

	drill, err := c.service().SetActiveDrill(c.Ctx.Request.Context(), actor, models.Drill(body))
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"message": "Active drill updated",
		"drill":   drill,
	})
}
