package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	bookSlotHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/book_slot"
	cancelAppointmentHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/cancel_appointment"
	createAvailabilityHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/create_availability"
	createPaymentHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/create_payment"
	deleteAvailabilityHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/delete_availability"
	endCallHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/end_call"
	getAppointmentsHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/get_appointments"
	getAvailableSlotsHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/get_available_slots"
	getCallTokenHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/get_call_token"
	getSlotsHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/get_slots"
	getUpcomingHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/get_upcoming_appointments"
	joinCallHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/join_call"
	listAvailabilitiesHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/list_availabilities"
	updateAvailabilityHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/update_availability"
	updateSlotStatusHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/update_slot_status"
	verifyPaymentHandler "github.com/Arunkino/MindHaven-Backend/internal/api/handlers/verify_payment"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/config"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
	availabilityRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/availability"
	mentorRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/mentor"
	paymentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/payment"
	slotRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/slot"
	"github.com/Arunkino/MindHaven-Backend/internal/integrations/notifier"
	"github.com/Arunkino/MindHaven-Backend/internal/integrations/razorpay"
	"github.com/Arunkino/MindHaven-Backend/internal/integrations/rtctoken"
	"github.com/Arunkino/MindHaven-Backend/internal/integrations/stripepay"
	appointmentsService "github.com/Arunkino/MindHaven-Backend/internal/service/appointments"
	availabilityService "github.com/Arunkino/MindHaven-Backend/internal/service/availability"
	slotsService "github.com/Arunkino/MindHaven-Backend/internal/service/slots"
	bookSlotUC "github.com/Arunkino/MindHaven-Backend/internal/usecase/book_slot"
	callSessionUC "github.com/Arunkino/MindHaven-Backend/internal/usecase/call_session"
	cancelAppointmentUC "github.com/Arunkino/MindHaven-Backend/internal/usecase/cancel_appointment"
	createPaymentUC "github.com/Arunkino/MindHaven-Backend/internal/usecase/create_payment"
	generateSlotsUC "github.com/Arunkino/MindHaven-Backend/internal/usecase/generate_slots"
	sendRemindersUC "github.com/Arunkino/MindHaven-Backend/internal/usecase/send_reminders"
	verifyPaymentUC "github.com/Arunkino/MindHaven-Backend/internal/usecase/verify_payment"
	"github.com/Arunkino/MindHaven-Backend/internal/worker"
	"github.com/Arunkino/MindHaven-Backend/pkg/dbmetrics"
	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
	"github.com/Arunkino/MindHaven-Backend/pkg/metrics"
	"github.com/Arunkino/MindHaven-Backend/pkg/txmanager"
)

// paymentGateway платежный провайдер: создание заказа и проверка подписи
type paymentGateway interface {
	createPaymentUC.PaymentProvider
	verifyPaymentUC.PaymentVerifier
}

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting MindHaven scheduling service...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}
	minimumCharge, err := cfg.Billing.MinimumChargeMoney()
	if err != nil {
		log.Fatal("Failed to parse minimum charge %s: %v", cfg.Billing.MinimumCharge, err)
	}

	// Счетчики бизнес-событий нужны use case всегда, наружу они отдаются только при включенных метриках
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		executor = db
		txMgr = txmanager.NewSQLTransactionManager(db)
	}

	mentorRepository := mentorRepo.NewRepository(executor)
	availabilityRepository := availabilityRepo.NewRepository(executor)
	slotRepository := slotRepo.NewRepository(executor)
	appointmentRepository := appointmentRepo.NewRepository(executor)
	paymentRepository := paymentRepo.NewRepository(executor)

	// Интеграции
	gateway := newPaymentGateway(cfg.Payment, log)
	log.Info("Payment provider: %s", gateway.Name())

	tokenIssuer := rtctoken.NewIssuer(cfg.RTC.AppID, cfg.RTC.Secret, time.Duration(cfg.RTC.TokenTTL)*time.Second)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	userNotifier := notifier.NewRedisNotifier(redisClient)

	// Use cases
	generateSlots := generateSlotsUC.NewUseCase(
		mentorRepository,
		availabilityRepository,
		slotRepository,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	bookSlot := bookSlotUC.NewUseCase(
		slotRepository,
		mentorRepository,
		appointmentRepository,
		txMgr,
		metricsCollector,
		cfg.App.PublicURL,
		log,
	)
	cancelAppointment := cancelAppointmentUC.NewUseCase(appointmentRepository, slotRepository, txMgr, log)
	callSession := callSessionUC.NewUseCase(appointmentRepository, txMgr, log)
	createPayment := createPaymentUC.NewUseCase(
		appointmentRepository,
		mentorRepository,
		paymentRepository,
		gateway,
		minimumCharge,
		cfg.Billing.Currency,
		log,
	)
	verifyPayment := verifyPaymentUC.NewUseCase(paymentRepository, gateway, log)
	sendReminders := sendRemindersUC.NewUseCase(
		appointmentRepository,
		tokenIssuer,
		userNotifier,
		metricsCollector,
		location,
		cfg.Reminders.LeadMinutes,
		log,
	)

	// Сервисы
	availabilitySvc := availabilityService.NewService(mentorRepository, availabilityRepository, slotRepository, txMgr, log)
	slotsSvc := slotsService.NewService(mentorRepository, slotRepository, location, log)
	appointmentsSvc := appointmentsService.NewService(mentorRepository, appointmentRepository, tokenIssuer, location, log)

	// Handlers
	createAvailability := createAvailabilityHandler.NewHandler(generateSlots, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(generateSlots, log)
	listAvailabilities := listAvailabilitiesHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	getSlots := getSlotsHandler.NewHandler(slotsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotsSvc, log)
	blockSlot := updateSlotStatusHandler.NewHandler(slotsSvc, updateSlotStatusHandler.ActionBlock, log)
	unblockSlot := updateSlotStatusHandler.NewHandler(slotsSvc, updateSlotStatusHandler.ActionUnblock, log)
	book := bookSlotHandler.NewHandler(bookSlot, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getUpcoming := getUpcomingHandler.NewHandler(appointmentsSvc, log)
	cancel := cancelAppointmentHandler.NewHandler(cancelAppointment, log)
	joinCall := joinCallHandler.NewHandler(callSession, log)
	endCall := endCallHandler.NewHandler(callSession, log)
	getCallToken := getCallTokenHandler.NewHandler(appointmentsSvc, log)
	createPaymentH := createPaymentHandler.NewHandler(createPayment, log)
	verifyPaymentH := verifyPaymentHandler.NewHandler(verifyPayment, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(log))

	// Ограничение частоты для бронирования и платежей
	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		limited = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limit enabled: rps=%.2f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Расписание ментора ---
	api.HandleFunc("/availabilities", createAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availabilities", listAvailabilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availabilities/{ruleId}", updateAvailability.Handle).Methods(http.MethodPut)
	api.HandleFunc("/availabilities/{ruleId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}/block", blockSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/slots/{slotId}/unblock", unblockSlot.Handle).Methods(http.MethodPost)
	api.Handle("/slots/{slotId}/book", limited(book.Handle)).Methods(http.MethodPost)

	// --- Встречи ---
	api.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/upcoming", getUpcoming.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancel.Handle).Methods(http.MethodPost)

	// --- Видеозвонки ---
	api.HandleFunc("/calls/{videoCallId}/join", joinCall.Handle).Methods(http.MethodPost)
	api.HandleFunc("/calls/{videoCallId}/end", endCall.Handle).Methods(http.MethodPost)
	api.HandleFunc("/calls/{videoCallId}/token", getCallToken.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	api.Handle("/calls/{videoCallId}/payments", limited(createPaymentH.Handle)).Methods(http.MethodPost)
	api.Handle("/payments/{paymentId}/verify", limited(verifyPaymentH.Handle)).Methods(http.MethodPost)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middleware.UserIDHeader},
		AllowCredentials: true,
	}).Handler(r)

	// Фоновые напоминания
	var reminderWorker *worker.Worker
	if cfg.Reminders.Enabled {
		reminderWorker = worker.New(
			asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
			worker.Config{
				Cron:        cfg.Reminders.Cron,
				Concurrency: cfg.Reminders.Concurrency,
				Location:    location,
			},
			worker.NewRemindersHandler(sendReminders, log),
			log,
		)
		if err := reminderWorker.Start(); err != nil {
			log.Fatal("Failed to start reminder worker: %v", err)
		}
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancelShutdown := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func newPaymentGateway(cfg config.PaymentConfig, log *logger.Logger) paymentGateway {
	if cfg.Provider == "stripe" {
		return stripepay.NewClient(cfg.Stripe.SecretKey, log)
	}
	return razorpay.NewClient(
		cfg.Razorpay.BaseURL,
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		time.Duration(cfg.Razorpay.Timeout)*time.Second,
		log,
	)
}
