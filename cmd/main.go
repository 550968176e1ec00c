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

	appointmentsReportHandler "github.com/m04kA/SMC-AppointmentBot/internal/api/handlers/appointments_report"
	chatUpdateHandler "github.com/m04kA/SMC-AppointmentBot/internal/api/handlers/chat_update"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentBot/internal/api/handlers/list_appointments"
	"github.com/m04kA/SMC-AppointmentBot/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentBot/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentBot/internal/infra/storage/appointment"
	chatGatewayClient "github.com/m04kA/SMC-AppointmentBot/internal/integrations/chatgateway"
	mailGatewayClient "github.com/m04kA/SMC-AppointmentBot/internal/integrations/mailgateway"
	appointmentsService "github.com/m04kA/SMC-AppointmentBot/internal/service/appointments"
	conversationService "github.com/m04kA/SMC-AppointmentBot/internal/service/conversation"
	reminderService "github.com/m04kA/SMC-AppointmentBot/internal/service/reminder"
	bookAppointmentUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentBot/pkg/logger"
	"github.com/m04kA/SMC-AppointmentBot/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию (toml + обязательные секреты из окружения)
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

	log.Info("Starting SMC-AppointmentBot...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Применяем миграцию; CREATE TABLE IF NOT EXISTS — безопасно на каждом старте
	if migration, err := os.ReadFile("migrations/001_init.sql"); err != nil {
		log.Warn("Migration file not found, skipping: %v", err)
	} else if _, err := db.Exec(string(migration)); err != nil {
		log.Fatal("Failed to apply migration: %v", err)
	} else {
		log.Info("Migration applied")
	}

	// Инициализируем интеграционных клиентов
	chatClient := chatGatewayClient.NewClient(
		cfg.ChatGateway.URL,
		cfg.Secrets.ChatGatewayToken,
		time.Duration(cfg.ChatGateway.Timeout)*time.Second,
		log,
	)
	mailClient := mailGatewayClient.NewClient(
		cfg.MailGateway.URL,
		cfg.Secrets.MailGatewayToken,
		time.Duration(cfg.MailGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ChatGateway=%s timeout=%ds, MailGateway=%s timeout=%ds)",
		cfg.ChatGateway.URL, cfg.ChatGateway.Timeout, cfg.MailGateway.URL, cfg.MailGateway.Timeout)

	// Инициализируем репозиторий
	apptRepository := appointmentRepo.NewRepository(db)

	// Инициализируем use case и сервисы
	bookUseCase := bookAppointmentUC.NewUseCase(
		apptRepository,
		chatClient,
		mailClient,
		cfg.Secrets.AdminEmail,
		log,
	)

	conversationSvc := conversationService.NewService(bookUseCase, chatClient, log)
	appointmentsSvc := appointmentsService.NewService(apptRepository, log)

	scheduler := reminderService.NewScheduler(
		apptRepository,
		chatClient,
		mailClient,
		metricsCollector,
		log,
		time.Duration(cfg.Scheduler.TickIntervalSeconds)*time.Second,
		time.Duration(cfg.Scheduler.LookaheadMinutes)*time.Minute,
	)

	// Инициализируем handlers
	chatUpdate := chatUpdateHandler.NewHandler(conversationSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	appointmentsReport := appointmentsReportHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные read-only маршруты дашборда
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/report", appointmentsReport.Handle).Methods(http.MethodGet)

	// Вебхук chat transport, защищён общим секретом
	webhook := api.PathPrefix("/webhook").Subrouter()
	webhook.Use(middleware.Auth(cfg.Secrets.WebhookSecret))
	webhook.HandleFunc("/update", chatUpdate.Handle).Methods(http.MethodPost)

	// Запускаем планировщик напоминаний
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		scheduler.Run(schedulerCtx)
	}()

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

	// Останавливаем цикл напоминаний и ждём завершения текущего тика
	stopScheduler()
	<-schedulerDone
	log.Info("Reminder scheduler stopped")

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
