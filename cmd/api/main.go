package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/auth"
	"github.com/noah-isme/course-reporting-api/internal/config"
	"github.com/noah-isme/course-reporting-api/internal/database"
	"github.com/noah-isme/course-reporting-api/internal/handler"
	"github.com/noah-isme/course-reporting-api/internal/middleware"
	"github.com/noah-isme/course-reporting-api/internal/repository"
	"github.com/noah-isme/course-reporting-api/internal/router"
	"github.com/noah-isme/course-reporting-api/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		logger = logger.Level(level)
	}
	logger = logger.With().Str("service", cfg.AppName).Logger()

	if cfg.InsecureJWTSecret {
		logger.Warn().Msg("JWT_SECRET is not set; using the insecure development default")
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	probes := map[string]handler.HealthProbe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable; faculty overview cache disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
			probes["redis"] = func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}
		}
	}

	var events service.EventPublisher = service.NoopEventPublisher{}
	if cfg.NATSURL != "" {
		var natsConn *nats.Conn
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable; domain events disabled")
		} else {
			defer natsConn.Drain()
			events = service.NewNATSEventPublisher(natsConn, cfg.EventsSubjectPrefix, logger)
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, cfg.AppName)
	policy := access.NewPolicy(access.WithUnscopedFallback(cfg.AccessUnscopedFallback))

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	classRepo := repository.NewClassRepository(db)
	reportRepo := repository.NewReportRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, validate, logger)
	userService := service.NewUserService(userRepo, logger)
	courseService := service.NewCourseService(courseRepo, activityService, events, validate, logger)
	classService := service.NewClassService(classRepo, courseRepo, userRepo, activityService, events, validate, logger)
	reportService := service.NewReportService(reportRepo, classRepo, userRepo, activityService, events, validate, logger)
	ratingService := service.NewRatingService(ratingRepo, userRepo, activityService, events, validate, logger)
	facultyService := service.NewFacultyService(facultyRepo, redisClient, cfg.FacultyCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: router.ErrorHandler,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:     handler.NewAuthHandler(authService, logger),
		UserHandler:     handler.NewUserHandler(userService, logger),
		CourseHandler:   handler.NewCourseHandler(courseService, logger),
		ClassHandler:    handler.NewClassHandler(classService, logger),
		ReportHandler:   handler.NewReportHandler(reportService, logger),
		RatingHandler:   handler.NewRatingHandler(ratingService, logger),
		FacultyHandler:  handler.NewFacultyHandler(facultyService, logger),
		ActivityHandler: handler.NewActivityHandler(activityService, logger),
		HealthProbes:    probes,
		Policy:          policy,
		JWTMiddleware:   middleware.JWTProtected(tokens),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Msg("server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
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
