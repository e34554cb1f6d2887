package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/kyue26/emertgency-sub001/docs"
	"github.com/kyue26/emertgency-sub001/internal/app/controllers"
	"github.com/kyue26/emertgency-sub001/internal/app/middleware"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter builds the gin engine with every route of the service
func SetupRouter(c *container.ServiceContainer) *gin.Engine {
	cfg := c.GetConfig()
	log := c.GetLogger()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(log), middleware.Recovery(log))

	r.Use(func(ctx *gin.Context) {
		ctx.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		ctx.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		ctx.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	})

	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r, c)
	return r
}

func registerRoutes(r *gin.Engine, c *container.ServiceContainer) {
	api := r.Group("/api")
	registerPublicRoutes(api, c)
	registerAuthenticatedRoutes(api, c)
}

func registerPublicRoutes(api *gin.RouterGroup, c *container.ServiceContainer) {
	public := api.Group("")
	public.Use(middleware.IPRateLimiter(10, 20))

	public.GET("/ping", controllers.HandleHealthFunc(c, "ping"))
	public.GET("/health/status", controllers.HandleHealthFunc(c, "status"))

	// Login is throttled harder per client to slow password guessing.
	public.POST("/auth/login", middleware.RateLimiter(middleware.RateLimiterConfig{
		Rate:      1,
		Burst:     5,
		LimitType: "combined",
	}), controllers.HandleJWTFunc(c, "login"))
}

func registerAuthenticatedRoutes(api *gin.RouterGroup, c *container.ServiceContainer) {
	cfg := c.GetConfig()
	jwtService := c.GetService("jwt").(services.InterfaceJWTService)

	auth := api.Group("")
	auth.Use(middleware.Authentication(jwtService))
	auth.Use(middleware.ProfessionalRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	professionals := auth.Group("/professionals")
	professionals.GET("", controllers.HandleProfessionalFunc(c, "getProfessionals"))
	professionals.GET("/:id/tasks", controllers.HandleProfessionalFunc(c, "getTaskSummary"))
	professionals.GET("/:id", controllers.HandleProfessionalFunc(c, "getProfessional"))
	professionals.PUT("/:id", controllers.HandleProfessionalFunc(c, "updateProfessional"))

	drills := auth.Group("/drills")
	drills.GET("/active", controllers.HandleDrillFunc(c, "getActiveDrill"))
	drills.PUT("/active", controllers.HandleDrillFunc(c, "setActiveDrill"))

	statisticsCache := middleware.NewResponseCache(5 * time.Second)
	auth.GET("/statistics/casualties", statisticsCache.Handler(), controllers.HandleIncidentFunc(c, "getCasualtyStatistics"))
	auth.GET("/resources/requests", controllers.HandleIncidentFunc(c, "getResourceRequests"))
}
