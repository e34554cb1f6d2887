package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/error/response"
)

// Context keys set by Authentication.
const (
	ContextProfessionalID = "professional_id"
	ContextRole           = "role"
)

// extractToken returns the token of a "Bearer <token>" header, or "".
func extractToken(authHeader string) string {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authentication validates the bearer token and stores the caller identity in
// the context.
func Authentication(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, code.ErrTokenMissing)
			return
		}

		tokenString := extractToken(authHeader)
		if tokenString == "" {
			response.Abort(c, code.ErrTokenInvalid)
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.Abort(c, code.ErrTokenInvalid)
			return
		}

		c.Set(ContextProfessionalID, claims.ProfessionalID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// CurrentActor returns the identity stored by Authentication.
func CurrentActor(c *gin.Context) (services.Actor, bool) {
	id := c.GetString(ContextProfessionalID)
	if id == "" {
		return services.Actor{}, false
	}
	return services.Actor{
		ProfessionalID: id,
		Role:           c.GetString(ContextRole),
	}, true
}
