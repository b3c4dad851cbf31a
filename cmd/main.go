package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_booking"
	createPriceRuleHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_price_rule"
	deletePriceRuleHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/delete_price_rule"
	getBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_booking"
	getCourtBookingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_court_bookings"
	getSlotPriceHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_slot_price"
	getSlotPricesHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_slot_prices"
	getUserBookingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_user_bookings"
	listPriceRulesHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_price_rules"
	quoteBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/quote_booking"
	updateBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/update_booking_status"
	updatePriceRuleHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/update_price_rule"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/config"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	courtCache "github.com/m04kA/SMC-CourtBooking/internal/infra/cache/court"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	priceRuleRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/pricerule"
	venueServiceClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/venueservice"
	bookingsService "github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	courtsService "github.com/m04kA/SMC-CourtBooking/internal/service/courts"
	priceRulesService "github.com/m04kA/SMC-CourtBooking/internal/service/pricerules"
	createBookingUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	getSlotPricesUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_slot_prices"
	quoteBookingUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/quote_booking"
	updateBookingUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/mq"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
)

// EventPublisher публикатор событий бронирований (RabbitMQ или заглушка)
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

// CourtSource источник кортов для сервиса кортов (с кэшем или без)
type CourtSource interface {
	GetCourt(ctx context.Context, courtID uuid.UUID) (*domain.Court, error)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

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

	log.Info("Starting SMC-CourtBooking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Pricing.Location()
	if err != nil {
		log.Fatal("Invalid pricing timezone: %v", err)
	}
	openFrom, openTo, err := cfg.Pricing.DefaultHours()
	if err != nil {
		log.Fatal("Invalid default opening hours: %v", err)
	}

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

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	priceRuleRepository := priceRuleRepo.NewRepository(wrappedDB)

	// Инициализируем клиента VenueService (с кэшем Redis, если включен)
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	var courtSource CourtSource = venueClient

	if cfg.Redis.Enabled {
		redisClient := courtCache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен: клиент сам уйдёт в VenueService при ошибках Redis
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		cache := courtCache.NewCache(redisClient, cfg.Redis.KeyPrefix, time.Duration(cfg.Redis.CourtTTL)*time.Second)
		courtSource = venueServiceClient.NewCachedClient(venueClient, cache, func(err error) bool {
			return errors.Is(err, courtCache.ErrCacheMiss)
		}, log)
		log.Info("Court cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CourtTTL)
	}
	log.Info("VenueService client initialized (url=%s, timeout=%ds)", cfg.VenueService.URL, cfg.VenueService.Timeout)

	// Инициализируем публикатор событий
	var publisher EventPublisher = mq.NopPublisher{}
	if cfg.Events.Enabled {
		rabbit, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, cfg.Metrics.ServiceName)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbit
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	courtSvc := courtsService.NewService(courtSource, priceRuleRepository, log)
	priceRuleSvc := priceRulesService.NewService(priceRuleRepository, courtSvc, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		courtSvc,
		txMgr,
		publisher,
		metricsCollector.Bookings("bookings"),
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		courtSvc,
		txMgr,
		publisher,
		metricsCollector.Bookings("create_booking"),
		createBookingUC.Settings{
			MaxSlotsPerBooking: cfg.Pricing.MaxSlotsPerBooking,
			AdvanceBookingDays: cfg.Pricing.AdvanceBookingDays,
			Location:           location,
		},
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		courtSvc,
		txMgr,
		publisher,
		metricsCollector.Bookings("update_booking"),
		updateBookingUC.Settings{
			MaxSlotsPerBooking: cfg.Pricing.MaxSlotsPerBooking,
			AdvanceBookingDays: cfg.Pricing.AdvanceBookingDays,
			Location:           location,
		},
		log,
	)

	quoteBookingUseCase := quoteBookingUC.NewUseCase(
		courtSvc,
		metricsCollector.Bookings("quote_booking"),
		cfg.Pricing.MaxSlotsPerBooking,
		log,
	)

	getSlotPricesUseCase := getSlotPricesUC.NewUseCase(
		bookingRepository,
		courtSvc,
		getSlotPricesUC.Settings{
			AdvanceBookingDays:         cfg.Pricing.AdvanceBookingDays,
			DefaultSlotDurationMinutes: cfg.Pricing.DefaultSlotDurationMinutes,
			DefaultOpenFrom:            openFrom,
			DefaultOpenTo:              openTo,
			Location:                   location,
		},
		log,
	)

	// Инициализируем handlers
	getSlotPrice := getSlotPriceHandler.NewHandler(quoteBookingUseCase, log)
	getSlotPrices := getSlotPricesHandler.NewHandler(getSlotPricesUseCase, log)
	quoteBooking := quoteBookingHandler.NewHandler(quoteBookingUseCase, log)
	listPriceRules := listPriceRulesHandler.NewHandler(priceRuleSvc, log)
	createPriceRule := createPriceRuleHandler.NewHandler(priceRuleSvc, log)
	updatePriceRule := updatePriceRuleHandler.NewHandler(priceRuleSvc, log)
	deletePriceRule := deletePriceRuleHandler.NewHandler(priceRuleSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCourtBookings := getCourtBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Цена одного слота
	api.HandleFunc("/courts/{courtId}/price", getSlotPrice.Handle).Methods(http.MethodGet)

	// Сетка слотов дня с ценами и доступностью
	api.HandleFunc("/courts/{courtId}/slots", getSlotPrices.Handle).Methods(http.MethodGet)

	// Расчёт стоимости выбранных слотов без бронирования
	api.HandleFunc("/courts/{courtId}/quote", quoteBooking.Handle).Methods(http.MethodPost)

	// Ценовые правила корта
	api.HandleFunc("/courts/{courtId}/price-rules", listPriceRules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Админ-панель (для менеджеров корта) ---
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/courts/{courtId}/bookings", getCourtBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/courts/{courtId}/price-rules", createPriceRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/price-rules/{ruleId}", updatePriceRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/price-rules/{ruleId}", deletePriceRule.Handle).Methods(http.MethodDelete)

	// CORS оборачивает роутер целиком, чтобы preflight не упирался в Methods()
	var handler http.Handler = r
	if len(cfg.CORS.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORS.AllowedOrigins)(r)
		log.Info("CORS enabled for %v", cfg.CORS.AllowedOrigins)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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
