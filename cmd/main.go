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

	acceptInviteHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/accept_invite"
	addCategoryInvitesHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/add_category_invites"
	addInvitesHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/add_invites"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/create_appointment"
	createMeetingHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/create_meeting"
	deleteMeetingHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/delete_meeting"
	getAppointmentHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_appointment"
	getAvailableDatesHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_available_dates"
	getAvailableTimesHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_available_times"
	getCalendarSettingsHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_calendar_settings"
	getCustomerAppointmentsHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_customer_appointments"
	getMeetingHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_meeting"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/list_appointments"
	listBlockedWindowsHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/list_blocked_windows"
	listResourcesHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/list_resources"
	resolveDurationHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/resolve_duration"
	sendInvitesHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/send_invites"
	updateCalendarSettingsHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/update_calendar_settings"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduling/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/calendar"
	durationRuleRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/durationrule"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonScheduling/internal/jobs/inviteretry"
	appointmentsService "github.com/m04kA/SMC-SalonScheduling/internal/service/appointments"
	calendarService "github.com/m04kA/SMC-SalonScheduling/internal/service/calendar"
	meetingsService "github.com/m04kA/SMC-SalonScheduling/internal/service/meetings"
	resourcesService "github.com/m04kA/SMC-SalonScheduling/internal/service/resources"
	acceptInviteUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/accept_invite"
	createAppointmentUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/create_appointment"
	getAvailableDatesUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_available_dates"
	getAvailableTimesUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_available_times"
	resolveDurationUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/resolve_duration"
	sendInvitesUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/send_invites"
	"github.com/m04kA/SMC-SalonScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduling/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduling/pkg/metrics"
	"github.com/m04kA/SMC-SalonScheduling/pkg/txmanager"
)

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

	log.Info("Starting SMC-SalonScheduling...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
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

	// Без метрик обёртка ничего не пишет, но даёт единый executor для транзакций
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB).WithMaxAttempts(cfg.Database.TxMaxAttempts)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	durationRuleRepository := durationRuleRepo.NewRepository(wrappedDB)
	meetingRepository := meetingRepo.NewRepository(wrappedDB)
	resourceRepository := resourceRepo.NewRepository(wrappedDB)
	subjectRepository := subjectRepo.NewRepository(wrappedDB)

	// Инициализируем отправку приглашений
	sendTimeout := time.Duration(cfg.Notifications.SendTimeoutSecond) * time.Second
	var dispatcher notifier.Dispatcher
	switch cfg.Notifications.Provider {
	case "twilio":
		dispatcher = notifier.NewTwilioDispatcher(
			cfg.Notifications.TwilioAccountSID,
			cfg.Notifications.TwilioAuthToken,
			cfg.Notifications.TwilioFromNumber,
			sendTimeout,
		)
	default:
		dispatcher = notifier.NewLogDispatcher(log)
	}
	inviteNotifier := notifier.New(
		dispatcher,
		notifier.NewRenderer(cfg.Notifications.InviteTemplate, location),
		metricsCollector,
		sendTimeout,
		log,
	)
	log.Info("Invite notifier initialized (provider=%s, timeout=%ds)",
		cfg.Notifications.Provider, cfg.Notifications.SendTimeoutSecond)

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(calendarRepository, txMgr, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	resourceSvc := resourcesService.NewService(resourceRepository, log)
	meetingSvc := meetingsService.NewService(
		meetingRepository,
		subjectRepository,
		resourceRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	resolveDurationUseCase := resolveDurationUC.NewUseCase(
		durationRuleRepository,
		subjectRepository,
		resourceRepository,
		log,
	)

	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		subjectRepository,
		resourceRepository,
		appointmentRepository,
		calendarSvc,
		resolveDurationUseCase,
		location,
		cfg.Scheduling.SlotStepMinutes,
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		subjectRepository,
		resourceRepository,
		appointmentRepository,
		calendarSvc,
		resolveDurationUseCase,
		location,
		cfg.Scheduling.SlotStepMinutes,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		resourceRepository,
		subjectRepository,
		resolveDurationUseCase,
		txMgr,
		metricsCollector,
		cfg.Scheduling.InternalCustomerName,
		cfg.Scheduling.InternalSubjectName,
		log,
	)

	sendInvitesUseCase := sendInvitesUC.NewUseCase(meetingRepository, subjectRepository, inviteNotifier, txMgr, log)
	acceptInviteUseCase := acceptInviteUC.NewUseCase(meetingRepository, createAppointmentUseCase, txMgr, log)

	// Фоновая повторная отправка неудачных приглашений
	var retryJob *inviteretry.Job
	if cfg.InviteRetry.Enabled {
		retryJob, err = inviteretry.New(sendInvitesUseCase, inviteretry.Config{
			Schedule:    cfg.InviteRetry.Schedule,
			MaxAttempts: cfg.InviteRetry.MaxAttempts,
			BatchSize:   cfg.InviteRetry.BatchSize,
			RunTimeout:  time.Duration(cfg.InviteRetry.BatchSize) * sendTimeout,
		}, location, log)
		if err != nil {
			log.Fatal("Failed to initialize invite retry job: %v", err)
		}
		retryJob.Start()
	}

	// Инициализируем handlers
	resolveDuration := resolveDurationHandler.NewHandler(resolveDurationUseCase, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getCalendarSettings := getCalendarSettingsHandler.NewHandler(calendarSvc, log)
	updateCalendarSettings := updateCalendarSettingsHandler.NewHandler(calendarSvc, log)
	listResources := listResourcesHandler.NewHandler(resourceSvc, log)
	listBlockedWindows := listBlockedWindowsHandler.NewHandler(resourceSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	createMeeting := createMeetingHandler.NewHandler(meetingSvc, log)
	getMeeting := getMeetingHandler.NewHandler(meetingSvc, log)
	deleteMeeting := deleteMeetingHandler.NewHandler(meetingSvc, log)
	addInvites := addInvitesHandler.NewHandler(meetingSvc, log)
	addCategoryInvites := addCategoryInvitesHandler.NewHandler(meetingSvc, log)
	sendInvites := sendInvitesHandler.NewHandler(sendInvitesUseCase, log)
	acceptInvite := acceptInviteHandler.NewHandler(acceptInviteUseCase, log)

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
	// PUBLIC ROUTES (чтение, без аутентификации)
	// ============================================================

	// --- Расписание ---
	api.HandleFunc("/durations", resolveDuration.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/times", getAvailableTimes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/settings", getCalendarSettings.Handle).Methods(http.MethodGet)

	// --- Ресурсы ---
	api.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/blocked-windows", listBlockedWindows.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// --- Предложенные встречи ---
	api.HandleFunc("/proposed-meetings/{meetingId}", getMeeting.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (изменения, требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/calendar/settings", updateCalendarSettings.Handle).Methods(http.MethodPut)

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	protected.HandleFunc("/proposed-meetings", createMeeting.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/proposed-meetings/{meetingId}", deleteMeeting.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/proposed-meetings/{meetingId}/invites", addInvites.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/proposed-meetings/{meetingId}/category-invites", addCategoryInvites.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/proposed-meetings/{meetingId}/invites/send-all", sendInvites.SendAll).Methods(http.MethodPost)
	protected.HandleFunc("/proposed-meetings/{meetingId}/categories/{categoryId}/send", sendInvites.SendCategory).Methods(http.MethodPost)

	protected.HandleFunc("/invites/{inviteId}/send", sendInvites.SendOne).Methods(http.MethodPost)
	protected.HandleFunc("/invites/{inviteId}/accept", acceptInvite.Handle).Methods(http.MethodPost)

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

	if retryJob != nil {
		if err := retryJob.Stop(shutdownCtx); err != nil {
			log.Error("Invite retry job did not stop in time: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
