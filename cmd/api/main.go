package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-proficiency-api/internal/config"
	"github.com/noah-isme/gema-proficiency-api/internal/database"
	"github.com/noah-isme/gema-proficiency-api/internal/events"
	"github.com/noah-isme/gema-proficiency-api/internal/handler"
	"github.com/noah-isme/gema-proficiency-api/internal/middleware"
	"github.com/noah-isme/gema-proficiency-api/internal/observability"
	"github.com/noah-isme/gema-proficiency-api/internal/repository"
	"github.com/noah-isme/gema-proficiency-api/internal/router"
	"github.com/noah-isme/gema-proficiency-api/internal/service"
	"github.com/noah-isme/gema-proficiency-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Drain()
	}

	observability.RegisterMetrics()
	validate := utils.NewValidator()

	examRepo := repository.NewExamRepository(db)
	resultRepo := repository.NewExamResultRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	taskSubmissionRepo := repository.NewTaskSubmissionRepository(db)
	mockExamRepo := repository.NewMockExamRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	publisher := events.NewPublisher(redisClient, natsConn, cfg.EventChannel, cfg.AppName)

	activityService := service.NewActivityService(activityRepo, logger)
	examService := service.NewExamSubmissionService(examRepo, resultRepo, validate, activityService, publisher, logger)
	performanceService := service.NewPerformanceService(examRepo, resultRepo, attendanceRepo, taskSubmissionRepo, cfg.MockCategory, logger)
	performanceExporter := service.NewPerformanceExporter(performanceService)
	attendanceService := service.NewAttendanceService(attendanceRepo, redisClient, validate, service.AttendanceConfig{
		PresentThresholdMinutes: cfg.PresentThresholdMinutes,
		HeartbeatCapMinutes:     cfg.HeartbeatCapMinutes,
		MinInterval:             cfg.HeartbeatMinInterval,
	}, logger)
	mockExamService := service.NewMockExamService(mockExamRepo, studentRepo, validate, activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		ExamHandler:        handler.NewExamHandler(examService, logger),
		PerformanceHandler: handler.NewPerformanceHandler(performanceService, performanceExporter, logger),
		AttendanceHandler:  handler.NewAttendanceHandler(attendanceService, logger),
		MockExamHandler:    handler.NewMockExamHandler(mockExamService, logger),
		ActivityHandler:    handler.NewActivityHandler(activityService, logger),
		HealthProbes:       healthProbes(db, redisClient, natsConn),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func healthProbes(db *gorm.DB, redisClient *redis.Client, natsConn *nats.Conn) map[string]handler.HealthProbe {
	probes := map[string]handler.HealthProbe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	if natsConn != nil {
		probes["nats"] = func(context.Context) error {
			if !natsConn.IsConnected() {
				return errors.New("nats disconnected")
			}
			return nil
		}
	}

	return probes
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
