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

	"github.com/m04kA/PsyBookingService/internal/api"
	bulkSetSlotsHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/bulk_set_slots"
	cancelBookingHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/cancel_booking"
	clientLookupHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/client_lookup"
	createBookingHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/get_client_bookings"
	getConsistencyHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/get_consistency"
	getProviderSlotsHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/get_provider_slots"
	getStatsHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/get_stats"
	listBookingsHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/list_bookings"
	setSlotAvailabilityHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/set_slot_availability"
	updateBookingStatusHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/update_booking_status"
	updatePaymentStatusHandler "github.com/m04kA/PsyBookingService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/PsyBookingService/internal/api/middleware"
	"github.com/m04kA/PsyBookingService/internal/config"
	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/infra/storage/kv"
	"github.com/m04kA/PsyBookingService/internal/infra/storage/ledger"
	scheduleRepo "github.com/m04kA/PsyBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/PsyBookingService/internal/integrations/specialistservice"
	"github.com/m04kA/PsyBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/PsyBookingService/internal/service/bookings"
	clientsService "github.com/m04kA/PsyBookingService/internal/service/clients"
	scheduleService "github.com/m04kA/PsyBookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/PsyBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/PsyBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PsyBookingService/internal/worker/holdexpiry"
	"github.com/m04kA/PsyBookingService/pkg/logger"
	"github.com/m04kA/PsyBookingService/pkg/metrics"
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

	log.Info("Starting PsyBookingService...")
	log.Info("Configuration loaded (storage=%s)", cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	rawStore, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer closeStore()

	store := kv.WithPrefix(kv.NewInstrumentedStore(rawStore, cfg.Storage.Driver, metricsCollector), cfg.Storage.KeyPrefix)

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone: %v", err)
	}

	template, err := scheduleService.NewTemplate(cfg.Schedule.DayStart, cfg.Schedule.DayEnd, cfg.Schedule.SlotStepMinutes)
	if err != nil {
		log.Fatal("Invalid schedule template: %v", err)
	}

	// Инициализируем справочник специалистов
	var remote specialistservice.Remote
	if cfg.SpecialistService.URL != "" {
		remote = specialistservice.NewClient(
			cfg.SpecialistService.URL,
			time.Duration(cfg.SpecialistService.Timeout)*time.Second,
		)
		log.Info("SpecialistService client initialized (url=%s, timeout=%ds)",
			cfg.SpecialistService.URL, cfg.SpecialistService.Timeout)
	}
	directory := specialistservice.NewDirectory(remote, providersFromConfig(cfg.Providers), log)

	// Инициализируем сервисы
	calendar := scheduleService.NewService(scheduleRepo.NewRepository(store), template, log)

	bookingSvc := bookingsService.NewService(
		calendar,
		[]bookingsService.Ledger{
			ledger.NewOnlineLedger(store),
			ledger.NewProviderLedger(store),
			ledger.NewManagerLedger(store),
		},
		metricsCollector,
		log,
		bookingsService.WithLocation(location),
		bookingsService.WithDefaultDuration(cfg.Booking.DefaultDurationMinutes),
	)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bookingSvc.LoadIndex(startupCtx); err != nil {
		cancelStartup()
		log.Fatal("Failed to load booking index: %v", err)
	}
	cancelStartup()

	aggregator := availability.NewService(calendar)
	clientSvc := clientsService.NewService(bookingSvc, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingSvc, directory, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(aggregator, directory, location, log)

	// Инициализируем handlers и роутер
	handlers := api.Handlers{
		CreateBooking:       createBookingHandler.NewHandler(createBookingUseCase, log),
		GetAvailableSlots:   getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		GetProviderSlots:    getProviderSlotsHandler.NewHandler(calendar, log),
		ClientLookup:        clientLookupHandler.NewHandler(clientSvc, log),
		GetClientBookings:   getClientBookingsHandler.NewHandler(clientSvc, log),
		ListBookings:        listBookingsHandler.NewHandler(bookingSvc, log),
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		UpdateBookingStatus: updateBookingStatusHandler.NewHandler(bookingSvc, log),
		UpdatePaymentStatus: updatePaymentStatusHandler.NewHandler(bookingSvc, log),
		CancelBooking:       cancelBookingHandler.NewHandler(bookingSvc, log),
		SetSlotAvailability: setSlotAvailabilityHandler.NewHandler(calendar, log),
		BulkSetSlots:        bulkSetSlotsHandler.NewHandler(calendar, log),
		GetStats:            getStatsHandler.NewHandler(bookingSvc, log),
		GetConsistency:      getConsistencyHandler.NewHandler(bookingSvc, directory, log),
	}

	limiterOpts := []middleware.RateLimiterOption{middleware.WithIdleTTL(cfg.RateLimit.IdleTTL())}
	if cfg.RateLimit.TrustProxyHeaders {
		limiterOpts = append(limiterOpts, middleware.WithTrustedProxyHeaders())
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, limiterOpts...)

	routerOpts := api.Options{
		RateLimiter: limiter,
	}
	if cfg.Metrics.Enabled {
		routerOpts.Metrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r := api.NewRouter(handlers, routerOpts)

	// Воркер истечения неоплаченных онлайн-броней
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	expiryWorker := holdexpiry.NewWorker(
		bookingSvc,
		cfg.Booking.HoldTTL(),
		time.Duration(cfg.Booking.HoldSweepIntervalSeconds)*time.Second,
		log,
	)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		expiryWorker.Start(workerCtx)
	}()

	// Очистка счетчиков rate limit по простаивающим IP
	go limiter.Run(workerCtx)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopWorker()
	<-workerDone

	log.Info("Server stopped gracefully")
}

// openStore подключает хранилище по storage.driver и возвращает функцию закрытия
func openStore(cfg *config.Config, log *logger.Logger) (kv.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}

		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
		return kv.NewRedisStore(client), func() { _ = client.Close() }, nil

	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}

		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		return kv.NewPostgresStore(db), func() { _ = db.Close() }, nil

	default:
		log.Warn("Using in-memory storage, data will be lost on restart")
		return kv.NewMemoryStore(), func() {}, nil
	}
}

func providersFromConfig(list []config.ProviderConfig) []domain.Provider {
	providers := make([]domain.Provider, 0, len(list))
	for _, p := range list {
		providers = append(providers, domain.Provider{
			ID:     p.ID,
			Name:   p.Name,
			Active: p.Active,
			Price:  p.Price,
		})
	}
	return providers
}
