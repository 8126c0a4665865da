package main

import (
  "context"
  "fmt"
  "os"
  "time"

  redisclient "github.com/campusorbit/collegelist-backend/internal/clients/redis"
  "github.com/campusorbit/collegelist-backend/internal/db"
  "github.com/campusorbit/collegelist-backend/internal/handlers"
  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/middleware"
  "github.com/campusorbit/collegelist-backend/internal/observability"
  "github.com/campusorbit/collegelist-backend/internal/repos"
  "github.com/campusorbit/collegelist-backend/internal/server"
  "github.com/campusorbit/collegelist-backend/internal/services"
  "github.com/campusorbit/collegelist-backend/internal/utils"
)

const serviceName = "collegelist-backend"

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  maxConcurrency := utils.GetEnvAsInt("TEMPLATIZATION_CONCURRENCY", 8, log)
  lockTTLSeconds := utils.GetEnvAsInt("TEMPLATIZATION_LOCK_TTL", 600, log)

  // Tracing
  shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: serviceName,
    Environment: os.Getenv("APP_ENV"),
    Version:     os.Getenv("APP_VERSION"),
  })
  if shutdownOTel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownOTel(ctx)
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  collegeRepo := repos.NewCollegeRepo(thePG, log)
  rankingRepo := repos.NewCollegeRankingRepo(thePG, log)
  placementRepo := repos.NewCollegePlacementRepo(thePG, log)
  courseRepo := repos.NewCollegeCourseRepo(thePG, log)
  generatedRepo := repos.NewGeneratedContentRepo(thePG, log)
  activityLogRepo := repos.NewActivityLogRepo(thePG, log)

  // Redis lease for bulk runs; optional
  generationLock, err := redisclient.NewGenerationLock(log, time.Duration(lockTTLSeconds)*time.Second)
  if err != nil {
    log.Warn("Could not init GenerationLock; bulk runs are not serialized", "error", err)
    generationLock = nil
  }

  // Services
  log.Info("Setting up Services from main...")
  activityLogService := services.NewActivityLogService(thePG, log, activityLogRepo)
  templatizationService := services.NewTemplatizationService(
    thePG,
    log,
    collegeRepo,
    rankingRepo,
    placementRepo,
    courseRepo,
    generatedRepo,
    activityLogService,
    generationLock,
    maxConcurrency,
  )

  // Handlers
  log.Info("Setting up handlers from main...")
  templatizationHandler := handlers.NewTemplatizationHandler(log, templatizationService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    ServiceName:           serviceName,
    AuthMiddleware:        authMiddleware,
    TemplatizationHandler: templatizationHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
