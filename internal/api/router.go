package api

import (
	"net/http"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/config"
	_ "github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/docs"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/api/v1/generation"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/api/v1/schema"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/middleware"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status" example:"OK"`
	Message string `json:"message" example:"Dynamic Interface Compiler API is running"`
}

// NewRouter wires middleware and routes. Stores and the LLM client must be
// initialized in the services package beforehand.
func NewRouter(cfg *config.Config) *gin.Engine {
	utils.SetExposeDetails(cfg.IsDevelopment())

	router := gin.New()
	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.MaxBody(middleware.DefaultMaxBodyBytes),
	)
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/health", Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := router.Group("/api")
	{
		generation.RegisterRoutes(apiGroup)
		schema.RegisterRoutes(apiGroup)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Route not found", nil))
	})

	return router
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "OK",
		Message: "Dynamic Interface Compiler API is running",
	})
}

// corsConfig allows every origin unless an allow-list is configured.
func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}
