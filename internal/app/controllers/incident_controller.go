package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/error/response"
)

// IncidentController serves incident-wide figures
type IncidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewIncidentController creates an incident controller
func NewIncidentController(ctx *gin.Context, container *container.ServiceContainer) *IncidentController {
	return &IncidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleIncidentFunc returns a gin handler dispatching to the named method
func HandleIncidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewIncidentController(ctx, container)

		switch method {
		case "getCasualtyStatistics":
			controller.GetCasualtyStatistics()
		case "getResourceRequests":
			controller.GetResourceRequests()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

func (c *IncidentController) service() services.InterfaceIncidentService {
	return c.Container.GetService("incident").(services.InterfaceIncidentService)
}

// GetCasualtyStatistics returns casualty counts per triage color
// @Summary      Casualty statistics
// @Tags         Incident
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /statistics/casualties [get]
// @Security     BearerAuth
func (c *IncidentController) GetCasualtyStatistics() {
	stats, err := c.service().GetCasualtyStatistics(c.Ctx.Request.Context())
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}
	response.Success(c.Ctx, gin.H{"statistics": stats})
}

// GetResourceRequests returns the open resource requests
// @Summary      Resource requests
// @Tags         Incident
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /resources/requests [get]
// @Security     BearerAuth
func (c *IncidentController) GetResourceRequests() {
	requests, err := c.service().GetResourceRequests(c.Ctx.Request.Context())
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}
	response.Success(c.Ctx, gin.H{"requests": requests})
}
