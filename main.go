package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"airmetr/config"
	"airmetr/constants"
	"airmetr/jobs"
	"airmetr/middleware"
	"airmetr/repositories"
	"airmetr/routes"
	"airmetr/services"
	"airmetr/services/logger"
	"airmetr/services/notification"
)

// @title        Airmetr API
// @version      1.0
// @description  Property listings and the reservation engine behind them.
// @BasePath     /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := newLogger(cfg)

	db, err := config.ConnectDB(cfg.Database, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	if cfg.SeedDB {
		if err := repositories.Seed(db); err != nil {
			log.Fatalf("Failed to seed: %v", err)
		}
	}

	router, m, c := config.InitApp(cfg)
	router.Use(middleware.RequestID())

	var (
		locker services.Locker            = services.NewLocalLocker()
		cache  services.AvailabilityCache = services.NopAvailabilityCache{}
	)
	redisClient, err := config.ConnectRedis(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, using in-process lock and no cache: %v", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		// local first so requests on this instance queue without polling Redis
		locker = services.ChainLocker{
			services.NewLocalLocker(),
			services.NewRedisLocker(services.RedisLockerOptions{Client: redisClient, TTL: cfg.BookingLockTTL}),
		}
		cache = services.NewRedisAvailabilityCache(services.RedisAvailabilityCacheOptions{
			Client: redisClient,
			TTL:    cfg.AvailabilityCacheTTL,
			Logger: appLogger,
		})
	}

	publishers := notification.MultiPublisher{notification.NewMelodyPublisher(m)}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := notification.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			appLogger.Warn("RabbitMQ unavailable, events go to websocket clients only: %v", err)
		} else {
			defer amqpPublisher.Close()
			publishers = append(publishers, amqpPublisher)
		}
	}

	storage, uploadDir := newImageStorage(cfg, appLogger)

	store := repositories.NewGormReservationStore(db)
	reservationService := services.NewReservationService(services.ReservationServiceOptions{
		Store:       store,
		Locker:      locker,
		Cache:       cache,
		Publisher:   publishers,
		Logger:      appLogger,
		MaxStayDays: cfg.MaxStayDays,
	})
	propertyService := services.NewPropertyService(services.PropertyServiceOptions{
		DB:        db,
		Locker:    locker,
		Cache:     cache,
		Storage:   storage,
		Publisher: publishers,
		Logger:    appLogger,
	})

	auditor := jobs.NewAuditor(store, appLogger)
	if err := jobs.InitCronJobs(c, cfg.AuditCron, auditor, appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer c.Stop()

	routes.SetupRoutes(router, routes.Options{
		Reservations:      reservationService,
		Properties:        propertyService,
		Melody:            m,
		Logger:            appLogger,
		JWTSecret:         cfg.JWTSecret,
		DefaultCustomerID: cfg.DefaultCustomerID,
		RateLimiter:       middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		UploadDir:         uploadDir,
		MaxStayDays:       cfg.MaxStayDays,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		appLogger.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	m.Close()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown: %v", err)
	}
}

func newLogger(cfg *config.Config) logger.Logger {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return logger.NewDefaultLogger(level)
	}
	fileLogger, err := logger.NewFileLogger(level, filepath.Dir(cfg.LogFile), strings.TrimSuffix(filepath.Base(cfg.LogFile), filepath.Ext(cfg.LogFile)))
	if err != nil {
		log.Printf("Warning: cannot open log file, logging to stderr: %v", err)
		return logger.NewDefaultLogger(level)
	}
	return fileLogger
}

// newImageStorage also returns the directory to serve under /images, empty
// when images live elsewhere.
func newImageStorage(cfg *config.Config, log logger.Logger) (services.ImageStorage, string) {
	if cfg.ImageStorage == constants.ImageStorageCloudinary {
		cld, err := config.ConnectCloudinary(cfg.CloudinaryURL)
		if err == nil {
			return services.NewCloudinaryImageStorage(cld, "properties"), ""
		}
		log.Warn("Cloudinary unavailable, storing images locally: %v", err)
	}
	return services.NewLocalImageStorage(cfg.UploadDir, "/images"), cfg.UploadDir
}
