package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	adminAppointmentsHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/admin_appointments"
	adminAuthHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/admin_auth"
	adminWindowsHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/admin_windows"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_available_slots"
	getCarriersHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_carriers"
	lookupCustomerHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/lookup_customer"
	submitBookingHandler "github.com/m04kA/SMC-BookingPortal/internal/api/handlers/submit_booking"
	"github.com/m04kA/SMC-BookingPortal/internal/api/middleware"
	"github.com/m04kA/SMC-BookingPortal/internal/config"
	sessionRepo "github.com/m04kA/SMC-BookingPortal/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
	adminService "github.com/m04kA/SMC-BookingPortal/internal/service/admin"
	sessionService "github.com/m04kA/SMC-BookingPortal/internal/service/session"
	adminAccessUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/admin_access"
	bookingFormUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/booking_form"
	getAvailableSlotsUC "github.com/m04kA/SMC-BookingPortal/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BookingPortal/pkg/logger"
	"github.com/m04kA/SMC-BookingPortal/pkg/metrics"
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

	log.Info("Starting SMC-BookingPortal...")
	log.Info("Configuration loaded (backend=%s, session store=%s)", cfg.BookingAPI.URL, cfg.Session.Backend)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load store timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище сессий администратора
	store, cleanup, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open session store: %v", err)
	}
	defer cleanup()

	// Клиент API записей
	client := bookingapi.NewClient(
		cfg.BookingAPI.URL,
		time.Duration(cfg.BookingAPI.Timeout)*time.Second,
		log.With("component", "bookingapi"),
		bookingapi.WithTransport(metricsCollector.InstrumentRoundTripper(http.DefaultTransport)),
	)
	log.Info("Booking API client initialized (url=%s timeout=%ds)", cfg.BookingAPI.URL, cfg.BookingAPI.Timeout)

	// Сервисы
	sessions := sessionService.NewService(store, cfg.Admin.SessionHours, metricsCollector, log)
	adminSvc := adminService.NewService(client, sessions, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(client, metricsCollector, location, log)
	adminAccessUseCase := adminAccessUC.NewUseCase(client, sessions, location, log)

	// Форма живет в пределах одного запроса
	newForm := func() *bookingFormUC.Controller {
		slots := getAvailableSlotsUC.NewSlotList(getAvailableSlotsUseCase)
		return bookingFormUC.NewController(client, slots, metricsCollector, location, log)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCarriers := getCarriersHandler.NewHandler(log)
	submitBooking := submitBookingHandler.NewHandler(func() submitBookingHandler.BookingForm { return newForm() }, log)
	lookupCustomer := lookupCustomerHandler.NewHandler(func() lookupCustomerHandler.BookingForm { return newForm() }, log)
	adminAuth := adminAuthHandler.NewHandler(adminAccessUseCase, log)
	adminAppointments := adminAppointmentsHandler.NewHandler(adminSvc, log)
	adminWindows := adminWindowsHandler.NewHandler(adminSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/portal/v1").Subrouter()
	api.Use(middleware.PortalSession(cfg.Session.CookieName, cfg.Session.CookieSecure))

	// ============================================================
	// PUBLIC ROUTES (форма бронирования)
	// ============================================================

	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/carriers", getCarriers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/customers/lookup", lookupCustomer.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (токен хранится на сервере по cookie портала)
	// ============================================================

	loginLimiter := middleware.NewRateLimiter(cfg.Admin.LoginRatePerMinute, cfg.Admin.LoginBurst, log)

	api.Handle("/admin/session", loginLimiter.Middleware(http.HandlerFunc(adminAuth.Login))).Methods(http.MethodPost)
	api.HandleFunc("/admin/session", adminAuth.Session).Methods(http.MethodGet)
	api.HandleFunc("/admin/session", adminAuth.Logout).Methods(http.MethodDelete)
	api.HandleFunc("/admin/session/stream", adminAuth.Stream).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/admin/appointments", adminAppointments.List).Methods(http.MethodGet)
	api.HandleFunc("/admin/appointments/bulk-delete", adminAppointments.BulkDelete).Methods(http.MethodPost)
	api.HandleFunc("/admin/appointments/{id}", adminAppointments.Get).Methods(http.MethodGet)
	api.HandleFunc("/admin/appointments/{id}", adminAppointments.Update).Methods(http.MethodPatch)
	api.HandleFunc("/admin/appointments/{id}", adminAppointments.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/admin/appointments/{id}/ship", adminAppointments.Ship).Methods(http.MethodPost)
	api.HandleFunc("/admin/appointments/{id}/guide", adminAppointments.UploadGuide).Methods(http.MethodPost)

	// --- Окна доступности ---
	api.HandleFunc("/admin/windows", adminWindows.List).Methods(http.MethodGet)
	api.HandleFunc("/admin/windows", adminWindows.Create).Methods(http.MethodPost)
	api.HandleFunc("/admin/windows/{id}", adminWindows.Update).Methods(http.MethodPatch)
	api.HandleFunc("/admin/windows/{id}", adminWindows.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown по сигналу или падению сервера
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}

// openSessionStore открывает хранилище сессий согласно session.backend
// Возвращаемая функция освобождает ресурсы хранилища
func openSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (sessionService.Store, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("Session store: redis (addr=%s, prefix=%s)", cfg.Redis.Addr, cfg.Redis.Prefix)

		return sessionRepo.NewRedisStore(rdb, cfg.Redis.Prefix), func() {
			if err := rdb.Close(); err != nil {
				log.Error("Failed to close redis client: %v", err)
			}
		}, nil

	case config.SessionBackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		store := sessionRepo.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure session schema: %w", err)
		}

		sweeper, err := sessionRepo.NewSweeper(store, cfg.Session.SweepSchedule,
			time.Duration(cfg.Session.SweepGraceHours)*time.Hour, log)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		sweeper.Start()
		log.Info("Session sweeper started (schedule=%q)", cfg.Session.SweepSchedule)

		return store, func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := sweeper.Stop(stopCtx); err != nil {
				log.Warn("Session sweeper did not stop in time: %v", err)
			}
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		}, nil

	default:
		log.Info("Session store: memory")
		return sessionRepo.NewMemoryStore(), func() {}, nil
	}
}
