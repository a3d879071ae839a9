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

	cancelBookingHandler "github.com/sweetnarcisse/SN-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/sweetnarcisse/SN-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/sweetnarcisse/SN-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/sweetnarcisse/SN-BookingService/internal/api/handlers/get_booking"
	getFleetHandler "github.com/sweetnarcisse/SN-BookingService/internal/api/handlers/get_fleet"
	getPlanningHandler "github.com/sweetnarcisse/SN-BookingService/internal/api/handlers/get_planning"
	markPaidHandler "github.com/sweetnarcisse/SN-BookingService/internal/api/handlers/mark_paid"
	"github.com/sweetnarcisse/SN-BookingService/internal/api/middleware"
	"github.com/sweetnarcisse/SN-BookingService/internal/config"
	"github.com/sweetnarcisse/SN-BookingService/internal/infra/cache"
	auditlogRepo "github.com/sweetnarcisse/SN-BookingService/internal/infra/storage/auditlog"
	bookingRepo "github.com/sweetnarcisse/SN-BookingService/internal/infra/storage/booking"
	fleetRepo "github.com/sweetnarcisse/SN-BookingService/internal/infra/storage/fleet"
	paymentClient "github.com/sweetnarcisse/SN-BookingService/internal/integrations/paymentservice"
	bookingsService "github.com/sweetnarcisse/SN-BookingService/internal/service/bookings"
	fleetService "github.com/sweetnarcisse/SN-BookingService/internal/service/fleet"
	createBookingUC "github.com/sweetnarcisse/SN-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/sweetnarcisse/SN-BookingService/internal/usecase/get_availability"
	"github.com/sweetnarcisse/SN-BookingService/pkg/logger"
	"github.com/sweetnarcisse/SN-BookingService/pkg/metrics"
	"github.com/sweetnarcisse/SN-BookingService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SN-BookingService...")

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	redisClient, err := cache.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	dayCache := cache.New(redisClient)
	log.Info("Connected to redis at %s", cfg.Redis.Addr)

	payments := paymentClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("PaymentService client initialized (%s, timeout=%ds)",
		cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	schedule := cfg.BuildSchedule()

	bookingRepository := bookingRepo.NewRepository(db)
	fleetRepository := fleetRepo.NewRepository(db)
	auditRepository := auditlogRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	fleetSvc := fleetService.NewService(fleetRepository, bookingRepository, dayCache, schedule, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		auditRepository,
		dayCache,
		payments,
		metricsCollector,
		log,
	)

	createBookingUseCase := createBookingUC.New(
		bookingRepository,
		fleetSvc,
		txMgr,
		auditRepository,
		dayCache,
		&createBookingUC.RealTimeProvider{},
		schedule,
		metricsCollector,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.New(
		fleetSvc,
		dayCache,
		&getAvailabilityUC.RealTimeProvider{},
		schedule,
		log,
	)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getPlanning := getPlanningHandler.NewHandler(bookingSvc, log)
	markPaid := markPaidHandler.NewHandler(bookingSvc, log)
	getFleet := getFleetHandler.NewHandler(fleetSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.StaffContext)

	// Public routes. Booking creation is public too: the staff-only
	// request fields are honored only when the staff header is set.
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Staff routes
	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/planning/{date}", getPlanning.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId}/mark-paid", markPaid.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/fleet", getFleet.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

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

	log.Info("Server stopped gracefully")
}
