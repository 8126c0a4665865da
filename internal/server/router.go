package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/campusorbit/collegelist-backend/internal/handlers"
  "github.com/campusorbit/collegelist-backend/internal/middleware"
)

type RouterConfig struct {
  ServiceName           string
  AuthMiddleware        *middleware.AuthMiddleware
  TemplatizationHandler *handlers.TemplatizationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware(cfg.ServiceName))
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireAuth())
  {
    templatization := api.Group("/templatization")
    templatization.POST("/silo/:silo", cfg.TemplatizationHandler.GenerateBulk)
    templatization.POST("/college/:collegeId/silo/:silo", cfg.TemplatizationHandler.GenerateOne)
    templatization.PUT("/content/:contentId", cfg.TemplatizationHandler.UpdateGenerated)
  }

  return router
}
