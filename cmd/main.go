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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/nocta/NCB-BookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/nocta/NCB-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/nocta/NCB-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/nocta/NCB-BookingService/internal/api/handlers/get_booking"
	getTicketHandler "github.com/nocta/NCB-BookingService/internal/api/handlers/get_ticket"
	getUserBookingsHandler "github.com/nocta/NCB-BookingService/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/nocta/NCB-BookingService/internal/api/handlers/get_venue_bookings"
	verifyCheckinHandler "github.com/nocta/NCB-BookingService/internal/api/handlers/verify_checkin"
	"github.com/nocta/NCB-BookingService/internal/api/middleware"
	"github.com/nocta/NCB-BookingService/internal/config"
	bookingRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/booking"
	paymentRepo "github.com/nocta/NCB-BookingService/internal/infra/storage/payment"
	"github.com/nocta/NCB-BookingService/internal/integrations/stripegw"
	venueServiceClient "github.com/nocta/NCB-BookingService/internal/integrations/venueservice"
	bookingsService "github.com/nocta/NCB-BookingService/internal/service/bookings"
	cancelBookingUC "github.com/nocta/NCB-BookingService/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/nocta/NCB-BookingService/internal/usecase/confirm_booking"
	createBookingUC "github.com/nocta/NCB-BookingService/internal/usecase/create_booking"
	verifyCheckinUC "github.com/nocta/NCB-BookingService/internal/usecase/verify_checkin"
	"github.com/nocta/NCB-BookingService/pkg/dbmetrics"
	"github.com/nocta/NCB-BookingService/pkg/logger"
	"github.com/nocta/NCB-BookingService/pkg/metrics"
	"github.com/nocta/NCB-BookingService/pkg/simpletxmanager"
	"github.com/nocta/NCB-BookingService/pkg/txmanager"
)

func main() {
	// Подхватываем .env (если есть) до чтения конфигурации
	_ = godotenv.Load()

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

	log.Info("Starting NCB-BookingService...")
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

	// Инициализируем интеграционных клиентов
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	stripeClient := stripegw.NewClient(
		cfg.Stripe.BaseURL,
		cfg.Stripe.SecretKey,
		time.Duration(cfg.Stripe.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s timeout=%ds, Stripe=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout, cfg.Stripe.BaseURL, cfg.Stripe.Timeout)
	if cfg.Stripe.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY is not set, payment operations will fail")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		paymentRepository *paymentRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		venueClient,
		stripeClient,
		cfg.Booking.PlatformFeePercent,
		cfg.Booking.Currency,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		stripeClient,
		txMgr,
		cfg.Booking.Currency,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		stripeClient,
		txMgr,
		log,
	)
	verifyCheckinUseCase := verifyCheckinUC.NewUseCase(bookingRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getTicket := getTicketHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	verifyCheckin := verifyCheckinHandler.NewHandler(verifyCheckinUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix: все маршруты требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	api.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Проверка билета на входе (с ограничением частоты запросов)
	rateLimited := middleware.RateLimit(cfg.Server.CheckinRPS, cfg.Server.CheckinBurst)
	api.Handle("/bookings/verify-checkin",
		rateLimited(http.HandlerFunc(verifyCheckin.Handle))).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение бронирования после оплаты
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Билет подтвержденного бронирования (QR-код)
	api.HandleFunc("/bookings/{bookingId}/ticket", getTicket.Handle).Methods(http.MethodGet)

	// --- Заведения ---
	// Список бронирований заведения
	api.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

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
