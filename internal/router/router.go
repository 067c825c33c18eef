package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "dealerops/docs" // registers the OpenAPI description
	"dealerops/internal/auth"
	"dealerops/internal/handler"
	"dealerops/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware. A nil
// validator leaves the /api/v1 routes unauthenticated.
func Setup(
	logger *zap.Logger,
	allowedOrigins []string,
	validator auth.TokenValidator,
	intakeH *handler.IntakeHandler,
	vehicleH *handler.VehicleHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	// Operational endpoints
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	if validator != nil {
		v1.Use(middleware.AuthMiddleware(validator))
	}

	intake := v1.Group("/intake")
	intake.POST("/extract", intakeH.Extract)
	intake.POST("/upload", intakeH.Upload)
	intake.POST("/commit", intakeH.Commit)
	intake.POST("/export", intakeH.Export)
	intake.GET("/documents/*key", intakeH.DocumentURL)
	intake.DELETE("/documents/*key", intakeH.DiscardDocument)

	vehicles := v1.Group("/vehicles")
	vehicles.GET("", vehicleH.List)
	vehicles.GET("/:identifier", vehicleH.Get)
	vehicles.GET("/:identifier/view", vehicleH.View)

	return r
}
