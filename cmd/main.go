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

	blockSlotsHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/block_slots"
	cancelRentalHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/cancel_rental"
	createBatchHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/create_batch"
	createDiscountHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/create_discount"
	createFacilityHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/create_facility"
	createRentalHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/create_rental"
	defineFacilitySlotsHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/define_facility_slots"
	deleteBatchHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/delete_batch"
	deleteFacilitySlotHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/delete_facility_slot"
	getFacilityRentalsHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/get_facility_rentals"
	getFacilitySlotsHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/get_facility_slots"
	getRentalHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/get_rental"
	listDiscountsHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/list_discounts"
	listFacilitiesHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/list_facilities"
	paymentCallbackHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/payment_callback"
	previewDiscountHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/preview_discount"
	unblockSlotsHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/unblock_slots"
	updateBatchSlotHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/update_batch_slot"
	updateFacilitySlotHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/update_facility_slot"
	updateFacilityStatusHandler "github.com/m04kA/SMC-ArenaService/internal/api/handlers/update_facility_status"
	"github.com/m04kA/SMC-ArenaService/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaService/internal/config"
	"github.com/m04kA/SMC-ArenaService/internal/infra/migrations"
	batchRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/batch"
	blockedRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/blockeddates"
	bookingRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/booking"
	discountRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/discount"
	facilityRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/slottemplate"
	gatewayClient "github.com/m04kA/SMC-ArenaService/internal/integrations/paymentgateway"
	batchlockService "github.com/m04kA/SMC-ArenaService/internal/service/batchlock"
	blockedDatesService "github.com/m04kA/SMC-ArenaService/internal/service/blockeddates"
	bookingsService "github.com/m04kA/SMC-ArenaService/internal/service/bookings"
	facilitiesService "github.com/m04kA/SMC-ArenaService/internal/service/facilities"
	pricingService "github.com/m04kA/SMC-ArenaService/internal/service/pricing"
	slotTemplateService "github.com/m04kA/SMC-ArenaService/internal/service/slottemplate"
	createBookingUC "github.com/m04kA/SMC-ArenaService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ArenaService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ArenaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaService/pkg/logger"
	"github.com/m04kA/SMC-ArenaService/pkg/metrics"
	"github.com/m04kA/SMC-ArenaService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ArenaService/pkg/txmanager"
)

// TxManager объединяет режимы транзакций, нужные сервисам и usecases
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting SMC-ArenaService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Применяем миграции
	if err := migrations.Run(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем клиента платёжного шлюза
	gateway := gatewayClient.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.KeyID,
		cfg.PaymentGateway.KeySecret,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		facilityRepository *facilityRepo.Repository
		slotRepository     *slotRepo.Repository
		blockedRepository  *blockedRepo.Repository
		bookingRepository  *bookingRepo.Repository
		batchRepository    *batchRepo.Repository
		discountRepository *discountRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		blockedRepository = blockedRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		batchRepository = batchRepo.NewRepository(wrappedDB)
		discountRepository = discountRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		facilityRepository = facilityRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		blockedRepository = blockedRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		batchRepository = batchRepo.NewRepository(db)
		discountRepository = discountRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	facilitySvc := facilitiesService.NewService(facilityRepository, log)
	slotTemplateSvc := slotTemplateService.NewService(
		slotRepository,
		facilityRepository,
		bookingRepository,
		batchRepository,
		log,
	)
	blockedDatesSvc := blockedDatesService.NewService(
		blockedRepository,
		slotRepository,
		facilityRepository,
		log,
	)
	batchlockSvc := batchlockService.NewService(slotRepository, batchRepository, txMgr, log)
	pricingSvc := pricingService.NewService(discountRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, gateway, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		slotRepository,
		blockedRepository,
		pricingSvc,
		gateway,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		facilityRepository,
		slotRepository,
		blockedRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	getFacilitySlots := getFacilitySlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createFacility := createFacilityHandler.NewHandler(facilitySvc, log)
	listFacilities := listFacilitiesHandler.NewHandler(facilitySvc, log)
	updateFacilityStatus := updateFacilityStatusHandler.NewHandler(facilitySvc, log)
	defineFacilitySlots := defineFacilitySlotsHandler.NewHandler(slotTemplateSvc, log)
	updateFacilitySlot := updateFacilitySlotHandler.NewHandler(slotTemplateSvc, log)
	deleteFacilitySlot := deleteFacilitySlotHandler.NewHandler(slotTemplateSvc, log)
	blockSlots := blockSlotsHandler.NewHandler(blockedDatesSvc, log)
	unblockSlots := unblockSlotsHandler.NewHandler(blockedDatesSvc, log)
	createRental := createRentalHandler.NewHandler(createBookingUseCase, log)
	getRental := getRentalHandler.NewHandler(bookingSvc, log)
	cancelRental := cancelRentalHandler.NewHandler(bookingSvc, log)
	getFacilityRentals := getFacilityRentalsHandler.NewHandler(bookingSvc, log)
	paymentCallback := paymentCallbackHandler.NewHandler(bookingSvc, log)
	previewDiscount := previewDiscountHandler.NewHandler(pricingSvc, log)
	createDiscount := createDiscountHandler.NewHandler(pricingSvc, log)
	listDiscounts := listDiscountsHandler.NewHandler(pricingSvc, log)
	updateBatchSlot := updateBatchSlotHandler.NewHandler(batchlockSvc, log)
	createBatch := createBatchHandler.NewHandler(batchlockSvc, log)
	deleteBatch := deleteBatchHandler.NewHandler(batchlockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов площадки на дату
	api.HandleFunc("/facilities/{facilityId}/slots", getFacilitySlots.Handle).Methods(http.MethodGet)

	// Callback платёжного шлюза (аутентифицируется HMAC-подписью)
	api.HandleFunc("/turf-rentals/{bookingId}/payment-callback", paymentCallback.Handle).Methods(http.MethodPost)

	// Предпросмотр цены со скидками
	api.HandleFunc("/discounts/preview", previewDiscount.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Площадки ---
	protected.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities", listFacilities.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/facilities/{facilityId}/status", updateFacilityStatus.Handle).Methods(http.MethodPatch)

	// --- Шаблон расписания ---
	protected.HandleFunc("/facility-slots", defineFacilitySlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facility-slots/{slotId}", updateFacilitySlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/facility-slots/{slotId}", deleteFacilitySlot.Handle).Methods(http.MethodDelete)

	// --- Блокировки дат ---
	protected.HandleFunc("/turf-rentals/blocked-slots", blockSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/turf-rentals/blocked-slots/{entryId}", unblockSlots.Handle).Methods(http.MethodDelete)

	// --- Аренды ---
	protected.HandleFunc("/turf-rentals", createRental.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/turf-rentals/{bookingId}", getRental.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/turf-rentals/{bookingId}/cancel", cancelRental.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/facilities/{facilityId}/rentals", getFacilityRentals.Handle).Methods(http.MethodGet)

	// --- Скидки ---
	protected.HandleFunc("/discounts", createDiscount.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/discounts", listDiscounts.Handle).Methods(http.MethodGet)

	// --- Тренировочные группы ---
	protected.HandleFunc("/batches", createBatch.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/batches/{batchId}", deleteBatch.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/batches/{batchId}/slot", updateBatchSlot.Handle).Methods(http.MethodPut)

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
