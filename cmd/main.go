package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	backSessionHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/back_session"
	cancelSessionHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/cancel_session"
	getDayGridHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/get_day_grid"
	getEligibleServicesHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/get_eligible_services"
	getSessionHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/get_session"
	selectClientHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/select_client"
	selectProfessionalHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/select_professional"
	selectServiceHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/select_service"
	selectSlotHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/select_slot"
	startSessionHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/start_session"
	submitSessionHandler "github.com/m04kA/SLN-SchedulingService/internal/api/handlers/submit_session"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SLN-SchedulingService/internal/config"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/sessionstore"
	salonServiceClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/timegrid"
	sessionsService "github.com/m04kA/SLN-SchedulingService/internal/service/sessions"
	getDayGridUC "github.com/m04kA/SLN-SchedulingService/internal/usecase/get_day_grid"
	selectSlotUC "github.com/m04kA/SLN-SchedulingService/internal/usecase/select_slot"
	submitBookingUC "github.com/m04kA/SLN-SchedulingService/internal/usecase/submit_booking"
	"github.com/m04kA/SLN-SchedulingService/pkg/logger"
	"github.com/m04kA/SLN-SchedulingService/pkg/metrics"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
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

	log.Info("Starting SLN-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к Redis (хранилище workflow-сессий)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Собираем сетку расписания из конфигурации
	grid, err := timegrid.New(
		types.TimeString(cfg.Schedule.GridStart),
		types.TimeString(cfg.Schedule.GridEnd),
		cfg.Schedule.GranularityMinutes,
	)
	if err != nil {
		log.Fatal("Invalid schedule config: %v", err)
	}
	log.Info("Schedule grid configured: %s-%s, step %d min",
		cfg.Schedule.GridStart, cfg.Schedule.GridEnd, cfg.Schedule.GranularityMinutes)

	// Инициализируем интеграционного клиента
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (SalonService=%s timeout=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout)

	// Хранилище сессий
	sessionTTL := time.Duration(cfg.Schedule.SessionTTLMinutes) * time.Minute
	sessionStore := sessionstore.NewRedisStore(redisClient, sessionTTL)

	// Инициализируем сервисы
	sessionSvc := sessionsService.NewService(sessionStore, salonClient, metricsCollector, log)

	// Инициализируем use cases
	getDayGridUseCase := getDayGridUC.NewUseCase(salonClient, grid, log)
	selectSlotUseCase := selectSlotUC.NewUseCase(sessionStore, salonClient, grid, metricsCollector, log)
	submitBookingUseCase := submitBookingUC.NewUseCase(sessionStore, salonClient, metricsCollector, log)

	// Инициализируем handlers
	startSession := startSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	selectClient := selectClientHandler.NewHandler(sessionSvc, log)
	selectProfessional := selectProfessionalHandler.NewHandler(sessionSvc, log)
	selectService := selectServiceHandler.NewHandler(sessionSvc, log)
	selectSlot := selectSlotHandler.NewHandler(selectSlotUseCase, log)
	backSession := backSessionHandler.NewHandler(sessionSvc, log)
	submitSession := submitSessionHandler.NewHandler(submitBookingUseCase, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionSvc, log)
	getDayGrid := getDayGridHandler.NewHandler(getDayGridUseCase, log)
	getEligibleServices := getEligibleServicesHandler.NewHandler(sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Дневная сетка занятости профессионала
	api.HandleFunc("/professionals/{professionalId}/day-grid",
		getDayGrid.Handle).Methods(http.MethodGet)

	// Услуги, которые выполняет профессионал
	api.HandleFunc("/professionals/{professionalId}/services",
		getEligibleServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Workflow-сессии подбора бронирования ---
	// Создание сессии
	protected.HandleFunc("/sessions", startSession.Handle).Methods(http.MethodPost)

	// Текущее состояние сессии
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Шаги выбора
	protected.HandleFunc("/sessions/{sessionId}/client", selectClient.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{sessionId}/professional", selectProfessional.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{sessionId}/service", selectService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{sessionId}/slot", selectSlot.Handle).Methods(http.MethodPut)

	// Возврат на предыдущий шаг
	protected.HandleFunc("/sessions/{sessionId}/back", backSession.Handle).Methods(http.MethodPost)

	// Подтверждение бронирования
	protected.HandleFunc("/sessions/{sessionId}/submit", submitSession.Handle).Methods(http.MethodPost)

	// Отмена сессии
	protected.HandleFunc("/sessions/{sessionId}", cancelSession.Handle).Methods(http.MethodDelete)

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

	log.Info("Server stopped gracefully")
}
