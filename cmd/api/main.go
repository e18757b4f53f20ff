// @title ExamForge API
// @version 1.0
// @description Generates randomized exam documents from a YAML question bank.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"examforge/internal/adapter"
	"examforge/internal/cache"
	"examforge/internal/config"
	"examforge/internal/domain"
	"examforge/internal/handler"
	"examforge/internal/logger"
	"examforge/internal/middleware"
	"examforge/internal/pdf"
	"examforge/internal/repository"
	"examforge/internal/service"
	"examforge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Bank repository, with a Redis read-through cache when configured
	fileRepo := repository.NewFileBankRepository(cfg.Bank.Path)
	var bankRepo domain.BankRepository = fileRepo
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis")
		cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
		bankRepo = repository.NewCachedBankRepository(fileRepo, cacheAdapter, cfg.Bank.CacheTTL)
		appLogger.Info("Bank cache enabled", zap.Duration("ttl", cfg.Bank.CacheTTL))
	} else {
		appLogger.Info("Bank cache disabled, reading bank file directly")
	}

	// Fail fast on an unusable bank before accepting requests
	if _, err := bankRepo.GetBank(context.Background()); err != nil {
		appLogger.Fatal("Failed to load question bank", zap.String("path", cfg.Bank.Path), zap.Error(err))
	}
	appLogger.Info("Question bank loaded", zap.String("path", cfg.Bank.Path))

	renderer := pdf.NewRenderer()
	examService := service.NewExamService(bankRepo, renderer, cfg)
	validator := validation.NewValidator(cfg.Exam.MaxExercises, cfg.Exam.SeedMax)
	examHandler := handler.NewExamHandler(examService, validator, cfg)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", examHandler.Health)

	apiGroup := app.Group("/api")
	apiGroup.Post("/exams", examHandler.GenerateExam)
	apiGroup.Get("/bank/facets", examHandler.GetBankFacets)
	apiGroup.Get("/bank/download", examHandler.DownloadBank)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
