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
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-FieldBookingService/internal/api"
	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	fieldsService "github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	createBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_availability"
	transitionBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/jwt"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/slotlock"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

// bookingStore репозиторий бронирований, общий для всех use case и сервисов
type bookingStore interface {
	createBookingUC.BookingRepository
	transitionBookingUC.BookingRepository
	bookingsService.BookingRepository
}

// fieldStore репозиторий каталога полей
type fieldStore interface {
	fieldsService.FieldRepository
}

// txManager менеджер транзакций для use case
type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	bookings bookingStore
	fields   fieldStore
	tx       txManager
	close    func()
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-FieldBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: PostgreSQL или память
	store, err := openStorage(cfg, log, metricsCollector, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Блокировка слотов в Redis (если включена)
	locker, closeLocker := openSlotLocker(cfg, log)
	defer closeLocker()

	// Публикация событий в RabbitMQ (если включена)
	publisher, closePublisher := openPublisher(cfg, log)
	defer closePublisher()

	tokens := jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenDuration())
	schedule := cfg.Booking.Schedule()
	log.Info("Schedule: first_slot=%02d:00, slots=%d, duration=%dm, conflict_policy=%s",
		schedule.FirstSlotHour, schedule.SlotCount, schedule.SlotDurationMinutes, schedule.ConflictPolicy)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store.bookings, log)
	fieldSvc := fieldsService.NewService(store.fields, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.fields,
		store.tx,
		locker,
		publisher,
		metricsCollector,
		schedule,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		store.bookings,
		store.fields,
		schedule,
		log,
	)

	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		store.bookings,
		store.tx,
		publisher,
		metricsCollector,
		log,
	)

	// Настраиваем роутер
	r := api.NewRouter(api.Dependencies{
		CreateBooking:     createBookingUseCase,
		GetAvailability:   getAvailabilityUseCase,
		TransitionBooking: transitionBookingUseCase,
		Bookings:          bookingSvc,
		Fields:            fieldSvc,
		Tokens:            tokens,
		Metrics:           metricsCollector,
		MetricsPath:       cfg.Metrics.Path,
		Logger:            log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func openStorage(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stopCh <-chan struct{}) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		mem := memory.NewStore()
		if cfg.Database.SeedDemoFields {
			seeded := memory.SeedDemoFields(mem)
			log.Info("In-memory storage seeded with %d demo fields", len(seeded))
		}
		log.Warn("Using in-memory storage, data is lost on restart")

		return &storage{
			bookings: mem.Bookings(),
			fields:   mem.Fields(),
			tx:       mem,
			close:    func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if m != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, m, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Plain(db)
	}

	return &storage{
		bookings: bookingRepo.NewRepository(wrappedDB),
		fields:   fieldRepo.NewRepository(wrappedDB),
		tx:       txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func openSlotLocker(cfg *config.Config, log *logger.Logger) (createBookingUC.SlotLocker, func()) {
	if !cfg.Redis.Enabled {
		log.Info("Redis slot lock disabled")
		return slotlock.Noop{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Без Redis бронирование продолжает работать на транзакции и уникальном индексе
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis is unavailable (%s), slot lock disabled: %v", cfg.Redis.Addr, err)
		_ = client.Close()
		return slotlock.Noop{}, func() {}
	}
	log.Info("Redis slot lock enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)

	locker := slotlock.New(client, time.Duration(cfg.Redis.LockTTL)*time.Second)
	return locker, func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}
}

func openPublisher(cfg *config.Config, log *logger.Logger) (createBookingUC.EventPublisher, func()) {
	if !cfg.RabbitMQ.Enabled {
		log.Info("Booking events publishing disabled")
		return events.Noop{}, func() {}
	}

	publisher, err := events.NewPublisher(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second,
		log,
	)
	if err != nil {
		log.Warn("RabbitMQ is unavailable, booking events disabled: %v", err)
		return events.Noop{}, func() {}
	}
	log.Info("Booking events are published to exchange %s", cfg.RabbitMQ.Exchange)

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}
}
