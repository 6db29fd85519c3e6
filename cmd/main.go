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

	createAppointmentHandler "github.com/mentara/scheduling-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/mentara/scheduling-service/internal/api/handlers/get_appointment"
	getDetailedSlotsHandler "github.com/mentara/scheduling-service/internal/api/handlers/get_detailed_slots"
	getExpertAppointmentsHandler "github.com/mentara/scheduling-service/internal/api/handlers/get_expert_appointments"
	getPendingCountHandler "github.com/mentara/scheduling-service/internal/api/handlers/get_pending_count"
	getScheduleHandler "github.com/mentara/scheduling-service/internal/api/handlers/get_schedule"
	getUserAppointmentsHandler "github.com/mentara/scheduling-service/internal/api/handlers/get_user_appointments"
	transitionAppointmentHandler "github.com/mentara/scheduling-service/internal/api/handlers/transition_appointment"
	updateAvailabilityHandler "github.com/mentara/scheduling-service/internal/api/handlers/update_availability"
	"github.com/mentara/scheduling-service/internal/api/middleware"
	"github.com/mentara/scheduling-service/internal/config"
	appointmentRepo "github.com/mentara/scheduling-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/mentara/scheduling-service/internal/infra/storage/availability"
	notifyServiceClient "github.com/mentara/scheduling-service/internal/integrations/notifyservice"
	appointmentsService "github.com/mentara/scheduling-service/internal/service/appointments"
	batchUpdateAvailabilityUC "github.com/mentara/scheduling-service/internal/usecase/batch_update_availability"
	createAppointmentUC "github.com/mentara/scheduling-service/internal/usecase/create_appointment"
	resolveSlotsUC "github.com/mentara/scheduling-service/internal/usecase/resolve_slots"
	transitionAppointmentUC "github.com/mentara/scheduling-service/internal/usecase/transition_appointment"
	"github.com/mentara/scheduling-service/pkg/dbmetrics"
	"github.com/mentara/scheduling-service/pkg/logger"
	"github.com/mentara/scheduling-service/pkg/metrics"
	"github.com/mentara/scheduling-service/pkg/simpletxmanager"
	"github.com/mentara/scheduling-service/pkg/txmanager"
)

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

	log.Info("Starting scheduling-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notification client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoRepeatableRead(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Сервис чтения записей
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)

	// Use cases
	resolveSlotsUseCase := resolveSlotsUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		txMgr,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		txMgr,
		notifyClient,
		log,
	)
	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		appointmentRepository,
		txMgr,
		notifyClient,
		log,
	)
	batchUpdateAvailabilityUseCase := batchUpdateAvailabilityUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	// Handlers
	getDetailedSlots := getDetailedSlotsHandler.NewHandler(resolveSlotsUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(resolveSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getExpertAppointments := getExpertAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getPendingCount := getPendingCountHandler.NewHandler(appointmentsSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(batchUpdateAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов эксперта: детальная и булева проекция для фронтенда
	api.HandleFunc("/experts/{expertId}/slots", getDetailedSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/experts/{expertId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Операции жизненного цикла: confirm | reject | cancel | complete | reply | rate
	protected.HandleFunc("/appointments/{appointmentId}/{action}",
		transitionAppointment.Handle).Methods(http.MethodPatch)

	// История записей
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/experts/{expertId}/appointments", getExpertAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/experts/{expertId}/appointments/pending-count",
		getPendingCount.Handle).Methods(http.MethodGet)

	// --- Управление доступностью (для экспертов) ---
	protected.HandleFunc("/experts/{expertId}/availability", updateAvailability.HandleBatch).Methods(http.MethodPut)
	protected.HandleFunc("/experts/{expertId}/availability/slot", updateAvailability.HandleSlot).Methods(http.MethodPut)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
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
