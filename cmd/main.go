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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	attachDocumentHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/attach_document"
	commitReservationHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/commit_reservation"
	getAvailableSlotsHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/get_available_slots"
	getFlowStateHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/get_flow_state"
	removeDocumentHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/remove_document"
	restartFlowHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/restart_flow"
	selectDateHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/select_date"
	selectOfficeHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/select_office"
	selectServiceHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/select_service"
	selectSlotHandler "github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers/select_slot"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/middleware"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/config"
	catalogCache "github.com/govconn-lk/GovConn-BookingFlowService/internal/infra/cache/catalog"
	draftRepo "github.com/govconn-lk/GovConn-BookingFlowService/internal/infra/storage/draft"
	blobServiceClient "github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/blobservice"
	govServiceClient "github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/govservice"
	reservationServiceClient "github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
	flowService "github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow"
	commitReservationUC "github.com/govconn-lk/GovConn-BookingFlowService/internal/usecase/commit_reservation"
	getAvailableSlotsUC "github.com/govconn-lk/GovConn-BookingFlowService/internal/usecase/get_available_slots"
	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/dbmetrics"
	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/logger"
	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/metrics"
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

	log.Info("Starting GovConn-BookingFlowService...")
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

	// Подключаемся к Redis. Кэш каталога деградирует до прямых запросов,
	// поэтому недоступный Redis не мешает запуску сервиса
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis is unavailable, catalog cache will fall back to direct fetches: %v", err)
	} else {
		log.Info("Successfully connected to Redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Инициализируем интеграционных клиентов
	govClient := govServiceClient.NewClient(
		cfg.GovService.URL,
		time.Duration(cfg.GovService.Timeout)*time.Second,
		log,
	)
	blobClient := blobServiceClient.NewClient(
		cfg.BlobService.URL,
		time.Duration(cfg.BlobService.Timeout)*time.Second,
		log,
	)
	reservationClient := reservationServiceClient.NewClient(
		cfg.ReservationService.URL,
		time.Duration(cfg.ReservationService.Timeout)*time.Second,
		time.Duration(cfg.ReservationService.ReserveTimeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (GovService=%s, BlobService=%s, ReservationService=%s)",
		cfg.GovService.URL, cfg.BlobService.URL, cfg.ReservationService.URL)

	// Кэширующий декоратор каталога
	catalog := catalogCache.NewCache(
		govClient,
		rdb,
		time.Duration(cfg.Redis.CatalogTTL)*time.Second,
		log,
	)

	// Инициализируем репозиторий черновиков (с метриками или без)
	var draftRepository *draftRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
		draftRepository = draftRepo.NewRepository(wrappedDB)
	} else {
		draftRepository = draftRepo.NewRepository(db)
	}

	// Инициализируем сервис потока бронирования
	flowSvc := flowService.NewService(
		draftRepository,
		catalog,
		blobClient,
		reservationClient,
		log,
	)

	// Инициализируем use cases
	commitReservationUseCase := commitReservationUC.NewUseCase(
		draftRepository,
		reservationClient,
		blobClient,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationClient,
		log,
	)

	// Инициализируем handlers
	getFlowState := getFlowStateHandler.NewHandler(flowSvc, log)
	selectOffice := selectOfficeHandler.NewHandler(flowSvc, log)
	selectService := selectServiceHandler.NewHandler(flowSvc, log)
	attachDocument := attachDocumentHandler.NewHandler(flowSvc, log)
	removeDocument := removeDocumentHandler.NewHandler(flowSvc, log)
	selectDate := selectDateHandler.NewHandler(flowSvc, log)
	selectSlot := selectSlotHandler.NewHandler(flowSvc, log)
	restartFlow := restartFlowHandler.NewHandler(flowSvc, log)
	commitReservation := commitReservationHandler.NewHandler(commitReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание слотов услуги с классификацией доступности
	api.HandleFunc("/services/{serviceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Citizen-NIC header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Состояние потока бронирования
	protected.HandleFunc("/booking-flow", getFlowState.Handle).Methods(http.MethodGet)

	// Шаги потока
	protected.HandleFunc("/booking-flow/office", selectOffice.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flow/service", selectService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flow/documents", attachDocument.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flow/documents/{documentTypeId}", removeDocument.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-flow/date", selectDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flow/slot", selectSlot.Handle).Methods(http.MethodPost)

	// Подтверждение и сброс потока
	protected.HandleFunc("/booking-flow/commit", commitReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flow/restart", restartFlow.Handle).Methods(http.MethodPost)

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
