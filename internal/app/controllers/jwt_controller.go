package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/error/response"
)

// JWTController handles authentication requests
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController creates an authentication controller
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is the login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"commander@test.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// HandleJWTFunc returns a gin handler dispatching to the named method
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// Login exchanges email and password for a bearer token
// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrBind)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(c.Ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c.Ctx, c.Container, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token":        result.Token,
		"expires_at":   result.ExpiresAt,
		"professional": result.Professional,
	})
}
