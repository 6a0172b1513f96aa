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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	batchCreateBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/batch_create_booking"
	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	cancelProviderDayHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_provider_day"
	confirmBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	createProviderHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_provider"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getProviderHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_provider"
	getProviderBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_provider_bookings"
	listProvidersHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_providers"
	rescheduleBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_booking"
	updateProviderScheduleHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_provider_schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/kv"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-SchedulingService/internal/jobs/completion"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	providersService "github.com/m04kA/SMC-SchedulingService/internal/service/providers"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/lockmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level, cfg.Logs.Format)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SchedulingService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Выбираем бэкенд хранилища коллекций
	backend, closeBackend, err := openBackend(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize storage backend %s: %v", cfg.Storage.Backend, err)
	}
	defer closeBackend()

	store := kv.NewStore(backend, metricsCollector)

	// Инициализируем репозитории
	providerRepository := providerRepo.NewRepository(store)
	appointmentRepository := appointmentRepo.NewRepository(store)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		providerRepository,
		appointmentRepository,
		metricsCollector,
		log,
		cfg.Booking.AlternativesHorizonDays,
	)
	providersSvc := providersService.NewService(providerRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, providerRepository, log)

	// Запись и перенос сериализуются по провайдеру
	lockMgr := lockmanager.NewLockManager()

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		lockMgr,
		metricsCollector,
		log,
		cfg.Booking.AlternativesLimit,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		lockMgr,
		metricsCollector,
		log,
		cfg.Booking.AlternativesLimit,
	)

	// Инициализируем handlers
	listProviders := listProvidersHandler.NewHandler(providersSvc, log)
	createProvider := createProviderHandler.NewHandler(providersSvc, log)
	getProvider := getProviderHandler.NewHandler(providersSvc, log)
	updateProviderSchedule := updateProviderScheduleHandler.NewHandler(providersSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilitySvc, cfg.Booking.DefaultSlotDuration(), log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(appointmentsSvc, log)
	cancelProviderDay := cancelProviderDayHandler.NewHandler(appointmentsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	batchCreateBooking := batchCreateBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(appointmentsSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(appointmentsSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Провайдеры и расписание ---
	api.HandleFunc("/providers", listProviders.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers", createProvider.Handle).Methods(http.MethodPost)
	api.HandleFunc("/providers/{providerId}", getProvider.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/schedule", updateProviderSchedule.Handle).Methods(http.MethodPut)

	// Свободные слоты провайдера
	api.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Записи провайдера и отмена дня
	api.HandleFunc("/providers/{providerId}/appointments", getProviderBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/cancel-day", cancelProviderDay.Handle).Methods(http.MethodPost)

	// --- Записи ---
	api.HandleFunc("/appointments", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/batch", batchCreateBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// Фоновое завершение прошедших записей
	var completionJob *completion.Scheduler
	if cfg.Jobs.CompletionEnabled {
		completionJob, err = completion.NewScheduler(cfg.Jobs.CompletionSchedule, appointmentsSvc, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to create completion job: %v", err)
		}
		if err := completionJob.Start(); err != nil {
			log.Fatal("Failed to start completion job: %v", err)
		}
		log.Info("Completion job scheduled: %s", cfg.Jobs.CompletionSchedule)
	}

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

	if completionJob != nil {
		completionJob.Stop()
		log.Info("Completion job stopped")
	}

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

// openBackend создает бэкенд хранилища по конфигурации и функцию его закрытия
func openBackend(cfg *config.Config, log *logger.Logger) (kv.Backend, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		if cfg.Database.MigrateOnStart {
			if err := kv.RunMigrations(cfg.Database.URL()); err != nil {
				return nil, nil, err
			}
			log.Info("Database migrations applied")
		}

		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetimeDuration())

		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		return kv.NewPostgresBackend(db), func() { _ = db.Close() }, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

		return kv.NewRedisBackend(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	default:
		log.Warn("Using in-memory storage, data is lost on restart")
		return kv.NewMemoryBackend(), func() {}, nil
	}
}
