package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/appointment-booking/internal/api"
	"github.com/m04kA/appointment-booking/internal/api/middleware"
	"github.com/m04kA/appointment-booking/internal/config"
	businessCache "github.com/m04kA/appointment-booking/internal/infra/cache/business"
	"github.com/m04kA/appointment-booking/internal/infra/events"
	bookingRepo "github.com/m04kA/appointment-booking/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/appointment-booking/internal/infra/storage/business"
	bookingsService "github.com/m04kA/appointment-booking/internal/service/bookings"
	businessesService "github.com/m04kA/appointment-booking/internal/service/businesses"
	createBookingUC "github.com/m04kA/appointment-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/appointment-booking/internal/usecase/get_available_slots"
	"github.com/m04kA/appointment-booking/pkg/dbmetrics"
	"github.com/m04kA/appointment-booking/pkg/logger"
	"github.com/m04kA/appointment-booking/pkg/metrics"
	"github.com/m04kA/appointment-booking/pkg/tracing"
	"github.com/m04kA/appointment-booking/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting appointment-booking...")
	log.Info("Configuration loaded from %s", configPath)

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled (endpoint=%s, ratio=%.2f)", cfg.Tracing.OTLPEndpoint, cfg.Tracing.SampleRatio)
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
		httpMetrics      middleware.HTTPMetrics
		eventMetrics     events.Metrics
		cacheMetrics     businessCache.Metrics
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		httpMetrics = metricsCollector
		eventMetrics = metricsCollector
		cacheMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	var businessRepository businessCache.Repository = businessRepo.NewRepository(wrappedDB)

	// Кэш бизнесов (если включен)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, cache will fall through to database: %v", err)
		}
		cancel()

		businessRepository = businessCache.NewCache(businessRepository, redisClient, cfg.Redis.TTL(), cacheMetrics, log)
		log.Info("Business cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Публикация событий
	publisher, err := newPublisher(cfg.Events)
	if err != nil {
		log.Fatal("Failed to initialize events publisher: %v", err)
	}
	log.Info("Events driver: %s", cfg.Events.Driver)

	notifier := events.NewNotifier(
		publisher,
		eventMetrics,
		log,
		time.Duration(cfg.Events.PublishTimeout)*time.Second,
	)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		businessRepository,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)
	businessSvc := businessesService.NewService(
		businessRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		businessRepository,
		log,
	)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := api.NewRouter(api.Dependencies{
		CreateBooking:     createBookingUseCase,
		GetAvailableSlots: getAvailableSlotsUseCase,
		Bookings:          bookingSvc,
		Businesses:        businessSvc,
	}, api.Options{
		JWTSecret:   cfg.Auth.JWTSecret,
		Metrics:     httpMetrics,
		RateLimiter: limiter,
		Logger:      log,
	})

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      tracing.Handler(r, cfg.Tracing.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close events publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newPublisher создает публикатора событий по драйверу из конфигурации
func newPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Driver {
	case config.EventsDriverRabbitMQ:
		return events.NewRabbitPublisher(cfg.RabbitURL, cfg.Exchange)
	case config.EventsDriverKafka:
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	case config.EventsDriverNone, "":
		return events.NoopPublisher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", events.ErrUnknownDriver, cfg.Driver)
	}
}
