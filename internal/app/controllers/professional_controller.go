package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/error/response"
)

// InterfaceProfessionalController defines the professional controller interface
type InterfaceProfessionalController interface {
	GetProfessionals()
	GetProfessional()
	GetTaskSummary()
	UpdateProfessional()
}

// ProfessionalController handles professional requests
type ProfessionalController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewProfessionalController creates a professional controller
func NewProfessionalController(ctx *gin.Context, container *container.ServiceContainer) *ProfessionalController {
	return &ProfessionalController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleProfessionalFunc returns a gin handler dispatching to the named method
func HandleProfessionalFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewProfessionalController(ctx, container)

		switch method {
		case "getProfessionals":
			controller.GetProfessionals()
		case "getProfessional":
			controller.GetProfessional()
		case "getTaskSummary":
			controller.GetTaskSummary()
		case "updateProfessional":
			controller.UpdateProfessional()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

func (c *ProfessionalController) service() services.InterfaceProfessionalService {
	return c.Container.GetService("professional").(services.InterfaceProfessionalService)
}

// GetProfessionals lists all professionals ordered by name
// @Summary      List professionals
// @Tags         Professionals
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /professionals [get]
// @Security     BearerAuth
func (c *ProfessionalController) GetProfessionals() {
	professionals, err := c.service().ListProfessionals(c.Ctx.Request.Context())
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}
	response.Success(c.Ctx, gin.H{"professionals": professionals})
}

// GetProfessional returns one professional
// @Summary      Get professional
// @Tags         Professionals
// @Produce      json
// @Param        id path string true "Professional ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /professionals/{id} [get]
// @Security     BearerAuth
func (c *ProfessionalController) GetProfessional() {
	professional, err := c.service().GetProfessional(c.Ctx.Request.Context(), c.Ctx.Param("id"))
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}
	response.Success(c.Ctx, gin.H{"professional": professional})
}

// GetTaskSummary returns the task counters of a professional
// @Summary      Get task summary
// @Tags         Professionals
// @Produce      json
// @Param        id path string true "Professional ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /professionals/{id}/tasks [get]
// @Security     BearerAuth
func (c *ProfessionalController) GetTaskSummary() {
	summary, err := c.service().GetTaskSummary(c.Ctx.Request.Context(), c.Ctx.Param("id"))
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}
	response.Success(c.Ctx, gin.H{"taskSummary": summary})
}

// UpdateProfessional updates the supplied fields of a professional. Omitted
// or null fields keep their value.
// @Summary      Update professional
// @Tags         Professionals
// @Accept       json
// @Produce      json
// @Param        id path string true "Professional ID"
// @Param        request body models.ProfessionalUpdate true "Fields to change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /professionals/{id} [put]
// @Security     BearerAuth
func (c *ProfessionalController) UpdateProfessional() {
	actor, ok := actorOrAbort(c.Ctx)
	if !ok {
		return
	}

	var update models.ProfessionalUpdate
	if err := c.Ctx.ShouldBindJSON(&update); err != nil {
		response.Fail(c.Ctx, code.ErrBind)
		return
	}

	professional, err := c.service().UpdateProfessional(c.Ctx.Request.Context(), actor, c.Ctx.Param("id"), update)
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"message":      "Professional updated successfully",
		"professional": professional,
	})
}
