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

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/assign_employee"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/cancel_reservation"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/change_status"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/create_reservation"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/get_day_schedule"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/get_reservation"
	holidaysHandler "github.com/m04kA/SMC-InspectionService/internal/api/handlers/holidays"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/list_reservations"
	notificationsHandler "github.com/m04kA/SMC-InspectionService/internal/api/handlers/notifications"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/payment_webhook"
	promotionsHandler "github.com/m04kA/SMC-InspectionService/internal/api/handlers/promotions"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/quick_reservation"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/sms_usage"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-InspectionService/internal/api/handlers/update_result"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	"github.com/m04kA/SMC-InspectionService/internal/config"
	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	eventHandlers "github.com/m04kA/SMC-InspectionService/internal/events/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/infra/cache/catalog"
	"github.com/m04kA/SMC-InspectionService/internal/infra/cache/slots"
	categoryRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/category"
	centerRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/center"
	clientRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/client"
	holidayRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-InspectionService/internal/infra/storage/migrations"
	notificationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/notification"
	outboxRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/outbox"
	paymentRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/payment"
	promotionRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/promotion"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
	smsUsageRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/smsusage"
	vehicleRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-InspectionService/internal/integrations/emailgateway"
	"github.com/m04kA/SMC-InspectionService/internal/integrations/smsgateway"
	holidaysService "github.com/m04kA/SMC-InspectionService/internal/service/holidays"
	"github.com/m04kA/SMC-InspectionService/internal/service/mailer"
	notificationsService "github.com/m04kA/SMC-InspectionService/internal/service/notifications"
	paymentsService "github.com/m04kA/SMC-InspectionService/internal/service/payments"
	promotionsService "github.com/m04kA/SMC-InspectionService/internal/service/promotions"
	reservationsService "github.com/m04kA/SMC-InspectionService/internal/service/reservations"
	"github.com/m04kA/SMC-InspectionService/internal/service/sms"
	assignEmployeeUC "github.com/m04kA/SMC-InspectionService/internal/usecase/assign_employee"
	cancelReservationUC "github.com/m04kA/SMC-InspectionService/internal/usecase/cancel_reservation"
	changeStatusUC "github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
	createReservationUC "github.com/m04kA/SMC-InspectionService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-InspectionService/internal/usecase/get_available_slots"
	getDayScheduleUC "github.com/m04kA/SMC-InspectionService/internal/usecase/get_day_schedule"
	holidayCascadeUC "github.com/m04kA/SMC-InspectionService/internal/usecase/holiday_cascade"
	quickReservationUC "github.com/m04kA/SMC-InspectionService/internal/usecase/quick_reservation"
	updateReservationUC "github.com/m04kA/SMC-InspectionService/internal/usecase/update_reservation"
	updateResultUC "github.com/m04kA/SMC-InspectionService/internal/usecase/update_result"
	"github.com/m04kA/SMC-InspectionService/internal/worker/eventconsumer"
	"github.com/m04kA/SMC-InspectionService/internal/worker/outboxrelay"
	"github.com/m04kA/SMC-InspectionService/internal/worker/reminder"
	"github.com/m04kA/SMC-InspectionService/pkg/auth"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
	"github.com/m04kA/SMC-InspectionService/pkg/metrics"
	"github.com/m04kA/SMC-InspectionService/pkg/mq"
	"github.com/m04kA/SMC-InspectionService/pkg/txmanager"
)

// slotCache кэш сетки слотов: Redis или заглушка
type slotCache interface {
	Get(ctx context.Context, centerID int64, date time.Time, categoryID *int64) (*slots.Entry, bool, error)
	Set(ctx context.Context, centerID int64, date time.Time, categoryID *int64, entry *slots.Entry) error
	Invalidate(ctx context.Context, centerID int64, dates ...time.Time) error
}

type centerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

type categoryReader interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Category, error)
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

	log.Info("Starting CT-InspectionService...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Метрики (если включены); методы Inc* безопасны для nil
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	reservations := reservationRepo.NewRepository(wrappedDB)
	centers := centerRepo.NewRepository(wrappedDB)
	categories := categoryRepo.NewRepository(wrappedDB)
	clients := clientRepo.NewRepository(wrappedDB)
	vehicles := vehicleRepo.NewRepository(wrappedDB)
	holidays := holidayRepo.NewRepository(wrappedDB)
	promotions := promotionRepo.NewRepository(wrappedDB)
	payments := paymentRepo.NewRepository(wrappedDB)
	notifications := notificationRepo.NewRepository(wrappedDB)
	smsUsage := smsUsageRepo.NewRepository(wrappedDB)
	outbox := outboxRepo.NewRepository(wrappedDB)

	// Кэш слотов в Redis
	var slotsCache slotCache = slots.Disabled{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		slotsCache = slots.NewCache(rdb, time.Duration(cfg.Redis.SlotTTL)*time.Second, metricsCollector)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotTTL)
	}

	// L1 кэш справочников
	var (
		centerSource   centerReader   = centers
		categorySource categoryReader = categories
	)
	if cfg.Cache.Enabled {
		store, err := catalog.NewStore(cfg.Cache.MaxCostMB<<20, cfg.Cache.NumCounters)
		if err != nil {
			log.Fatal("Failed to create catalog cache: %v", err)
		}
		defer store.Close()

		ttl := time.Duration(cfg.Cache.TTL) * time.Second
		centerSource = catalog.NewCenters(centers, store, ttl)
		categorySource = catalog.NewCategories(categories, store, ttl)
		log.Info("Catalog cache enabled (max=%dMB, ttl=%ds)", cfg.Cache.MaxCostMB, cfg.Cache.TTL)
	}

	// Шлюзы и каналы уведомлений
	smsGateway := smsgateway.NewClient(
		cfg.SMSGateway.URL,
		cfg.SMSGateway.APIKey,
		time.Duration(cfg.SMSGateway.Timeout)*time.Second,
		log,
	)
	emailGateway := emailgateway.NewClient(
		cfg.EmailGateway.URL,
		cfg.EmailGateway.APIKey,
		cfg.Notifications.EmailFrom,
		cfg.Notifications.EmailFromName,
		time.Duration(cfg.EmailGateway.Timeout)*time.Second,
		log,
	)
	smsSvc := sms.NewService(smsUsage, centerSource, smsGateway, sms.Config{
		Enabled:     cfg.Notifications.SMSEnabled,
		DefaultFrom: cfg.Notifications.SMSDefaultFrom,
		Quota:       cfg.Notifications.SMSQuota,
	}, metricsCollector, log)
	mailerSvc, err := mailer.NewService(emailGateway, cfg.Notifications.EmailEnabled, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer: %v", err)
	}
	notificationsSvc := notificationsService.NewService(notifications, metricsCollector, log)
	log.Info("Notification channels initialized (sms=%t, email=%t)",
		cfg.Notifications.SMSEnabled, cfg.Notifications.EmailEnabled)

	// Доставка событий: outbox -> relay -> (локальный диспетчер | RabbitMQ)
	dispatcher := events.NewDispatcher(metricsCollector, log)

	var sink outboxrelay.Sink
	var consumer *eventconsumer.Consumer
	switch cfg.Events.Transport {
	case config.EventsTransportAMQP:
		publisher, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal("Failed to connect publisher to amqp: %v", err)
		}
		defer publisher.Close()

		keys := make([]string, len(domain.AllEvents))
		for i, name := range domain.AllEvents {
			keys[i] = string(name)
		}
		source, err := mq.NewConsumer(mq.ConsumerConfig{
			URL:      cfg.AMQP.URL,
			Exchange: cfg.AMQP.Exchange,
			Queue:    cfg.AMQP.Queue,
			Keys:     keys,
			Prefetch: cfg.AMQP.Prefetch,
			DLXName:  cfg.AMQP.DLX,
			DLXQueue: cfg.AMQP.DLQ,
		})
		if err != nil {
			log.Fatal("Failed to connect consumer to amqp: %v", err)
		}
		defer source.Close()

		sink = outboxrelay.NewAMQPSink(publisher)
		consumer = eventconsumer.New(source, dispatcher, cfg.Metrics.ServiceName, log)
		log.Info("Events transport: amqp (exchange=%s, queue=%s)", cfg.AMQP.Exchange, cfg.AMQP.Queue)
	default:
		sink = outboxrelay.NewLocalSink(dispatcher)
		log.Info("Events transport: local")
	}

	relay := outboxrelay.New(outbox, sink, outboxrelay.Config{
		BatchSize:    cfg.Events.BatchSize,
		PollInterval: time.Duration(cfg.Events.PollInterval) * time.Millisecond,
		LockFor:      time.Duration(cfg.Events.LockTimeout) * time.Second,
		MaxAttempts:  cfg.Events.MaxAttempts,
	}, metricsCollector, log)

	if cfg.Events.ListenNotify {
		listener, err := outboxrelay.Listen(cfg.Database.DSN(), log)
		if err != nil {
			log.Warn("Outbox LISTEN is unavailable, falling back to polling: %v", err)
		} else {
			defer func(l *pq.Listener) { _ = l.Close() }(listener)
			relay.ListenTo(listener.Notify)
		}
	}

	// Use cases
	changeStatus := changeStatusUC.NewUseCase(reservations, outbox, relay, slotsCache, txManager, log)
	createReservation := createReservationUC.NewUseCase(
		reservations,
		centerSource,
		categorySource,
		clients,
		vehicles,
		holidays,
		outbox,
		relay,
		slotsCache,
		txManager,
		log,
	)
	updateReservation := updateReservationUC.NewUseCase(
		reservations,
		centerSource,
		categorySource,
		holidays,
		slotsCache,
		txManager,
		log,
	)
	quickReservation := quickReservationUC.NewUseCase(clients, vehicles, createReservation, txManager, log)
	getAvailableSlots := getAvailableSlotsUC.NewUseCase(reservations, centerSource, categorySource, holidays, slotsCache, log)
	getDaySchedule := getDayScheduleUC.NewUseCase(reservations, holidays, log)
	holidayCascade := holidayCascadeUC.NewUseCase(reservations, changeStatus, log)
	updateResult := updateResultUC.NewUseCase(changeStatus, vehicles, txManager, log)
	cancelReservation := cancelReservationUC.NewUseCase(changeStatus, log)
	assignEmployee := assignEmployeeUC.NewUseCase(reservations, txManager, log)

	// Сервисы
	reservationsSvc := reservationsService.NewService(reservations, txManager, slotsCache, log)
	holidaysSvc := holidaysService.NewService(holidays, outbox, relay, slotsCache, txManager, log)
	promotionsSvc := promotionsService.NewService(promotions, outbox, relay, txManager, log)
	paymentsSvc := paymentsService.NewService(payments, outbox, relay, txManager, log)

	// Обработчики событий
	eventHandlers.New(eventHandlers.Deps{
		Reservations: reservations,
		Clients:      clients,
		Centers:      centerSource,
		InApp:        notificationsSvc,
		SMS:          smsSvc,
		Mailer:       mailerSvc,
		Changer:      changeStatus,
		Cascade:      holidayCascade,
		Logger:       log,
	}, eventHandlers.Config{
		BroadcastLimit:   cfg.Events.BroadcastLimit,
		BroadcastWorkers: cfg.Events.BroadcastWorker,
	}).Register(dispatcher)

	// HTTP handlers
	var (
		createReservationH = create_reservation.NewHandler(createReservation, log)
		listReservationsH  = list_reservations.NewHandler(reservationsSvc, log)
		getReservationH    = get_reservation.NewHandler(reservationsSvc, log)
		getDayScheduleH    = get_day_schedule.NewHandler(getDaySchedule, log)
		getSlotsH          = get_available_slots.NewHandler(getAvailableSlots, log)
		updateReservationH = update_reservation.NewHandler(updateReservation, log)
		changeStatusH      = change_status.NewHandler(changeStatus, log)
		updateResultH      = update_result.NewHandler(updateResult, log)
		cancelReservationH = cancel_reservation.NewHandler(cancelReservation, reservationsSvc, log)
		assignEmployeeH    = assign_employee.NewHandler(assignEmployee, log)
		quickReservationH  = quick_reservation.NewHandler(quickReservation, log)
		holidaysH          = holidaysHandler.NewHandler(holidaysSvc, log)
		promotionsH        = promotionsHandler.NewHandler(promotionsSvc, log)
		paymentWebhookH    = payment_webhook.NewHandler(paymentsSvc, log)
		notificationsH     = notificationsHandler.NewHandler(notificationsSvc, log)
		smsUsageH          = sms_usage.NewHandler(smsSvc, log)
	)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Вебхук платежного провайдера: без JWT, по общему секрету
	api.Handle("/payments/webhook",
		middleware.HandlerFunc(paymentWebhookH.Handle, middleware.WebhookSecret(cfg.Payments.WebhookSecret, log)),
	).Methods(http.MethodPost)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Уведомления пользователя: центр не нужен
	personal := api.PathPrefix("/notifications").Subrouter()
	personal.Use(middleware.Auth(verifier, log), middleware.Require(domain.CapManageNotifications))
	personal.HandleFunc("", notificationsH.List).Methods(http.MethodGet)
	personal.HandleFunc("/unread-count", notificationsH.UnreadCount).Methods(http.MethodGet)
	personal.HandleFunc("/read-all", notificationsH.MarkAllRead).Methods(http.MethodPatch)
	personal.HandleFunc("/{id:[0-9]+}/read", notificationsH.MarkRead).Methods(http.MethodPatch)
	personal.HandleFunc("/{id:[0-9]+}", notificationsH.Delete).Methods(http.MethodDelete)

	// Маршруты центра
	tenant := api.PathPrefix("").Subrouter()
	tenant.Use(middleware.Auth(verifier, log), middleware.RequireCenter)

	read := middleware.Require(domain.CapReadSchedule)
	manage := middleware.Require(domain.CapManageSchedule)
	results := middleware.Require(domain.CapRecordResults)
	catalogAdmin := middleware.Require(domain.CapManageCatalog)

	// --- Записи ---
	tenant.Handle("/reservations", middleware.HandlerFunc(listReservationsH.Handle, read)).Methods(http.MethodGet)
	tenant.Handle("/reservations", middleware.HandlerFunc(createReservationH.Handle, read)).Methods(http.MethodPost)
	tenant.Handle("/reservations/quick", middleware.HandlerFunc(quickReservationH.Handle, manage)).Methods(http.MethodPost)
	tenant.Handle("/reservations/day/{date}", middleware.HandlerFunc(getDayScheduleH.Handle, manage)).Methods(http.MethodGet)
	tenant.Handle("/reservations/available-slots/{date}", middleware.HandlerFunc(getSlotsH.Handle, read)).Methods(http.MethodGet)
	tenant.Handle("/reservations/{id:[0-9]+}", middleware.HandlerFunc(getReservationH.Handle, read)).Methods(http.MethodGet)
	tenant.Handle("/reservations/{id:[0-9]+}", middleware.HandlerFunc(updateReservationH.Handle, manage)).Methods(http.MethodPatch)
	tenant.Handle("/reservations/{id:[0-9]+}", middleware.HandlerFunc(cancelReservationH.Handle, manage)).Methods(http.MethodDelete)
	tenant.Handle("/reservations/{id:[0-9]+}/status", middleware.HandlerFunc(changeStatusH.Handle, manage)).Methods(http.MethodPatch)
	tenant.Handle("/reservations/{id:[0-9]+}/result", middleware.HandlerFunc(updateResultH.Handle, results)).Methods(http.MethodPatch)
	tenant.Handle("/reservations/{id:[0-9]+}/assign", middleware.HandlerFunc(assignEmployeeH.Handle, manage)).Methods(http.MethodPatch)

	// --- Выходные ---
	tenant.Handle("/holidays", middleware.HandlerFunc(holidaysH.List, read)).Methods(http.MethodGet)
	tenant.Handle("/holidays", middleware.HandlerFunc(holidaysH.Create, catalogAdmin)).Methods(http.MethodPost)
	tenant.Handle("/holidays/upcoming", middleware.HandlerFunc(holidaysH.Upcoming, read)).Methods(http.MethodGet)
	tenant.Handle("/holidays/{id:[0-9]+}/toggle", middleware.HandlerFunc(holidaysH.Toggle, catalogAdmin)).Methods(http.MethodPatch)
	tenant.Handle("/holidays/{id:[0-9]+}", middleware.HandlerFunc(holidaysH.Delete, catalogAdmin)).Methods(http.MethodDelete)

	// --- Акции ---
	tenant.Handle("/promotions", middleware.HandlerFunc(promotionsH.List, read)).Methods(http.MethodGet)
	tenant.Handle("/promotions", middleware.HandlerFunc(promotionsH.Create, catalogAdmin)).Methods(http.MethodPost)
	tenant.Handle("/promotions/validate", middleware.HandlerFunc(promotionsH.Validate, read)).Methods(http.MethodPost)

	// --- SMS ---
	tenant.Handle("/sms/usage", middleware.HandlerFunc(smsUsageH.Handle, catalogAdmin)).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return relay.Run(gctx)
	})

	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	if cfg.Reminder.Enabled {
		worker := reminder.New(reservations, centerSource, mailerSvc, time.Duration(cfg.Reminder.Interval)*time.Second, log)
		g.Go(func() error {
			return worker.Run(gctx)
		})
		log.Info("Reminder worker enabled (interval=%ds)", cfg.Reminder.Interval)
	}

	// Ожидаем сигнал завершения или падение одного из компонентов
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
