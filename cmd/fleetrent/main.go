package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"fleetrent/internal/app/commands"
	availabilityapp "fleetrent/internal/app/handlers/availability"
	bookingapp "fleetrent/internal/app/handlers/booking"
	customersapp "fleetrent/internal/app/handlers/customers"
	pricingapp "fleetrent/internal/app/handlers/pricing"
	vehiclesapp "fleetrent/internal/app/handlers/vehicles"
	"fleetrent/internal/app/middleware"
	appoutbox "fleetrent/internal/app/outbox"
	"fleetrent/internal/app/policies"
	"fleetrent/internal/app/queries"
	"fleetrent/internal/app/schedule"
	"fleetrent/internal/app/uow"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/infra/broker/kafka"
	"fleetrent/internal/infra/config"
	mongodb "fleetrent/internal/infra/db/mongo"
	ginserver "fleetrent/internal/infra/http/gin"
	"fleetrent/internal/infra/obs"
	infraoutbox "fleetrent/internal/infra/outbox"
	"fleetrent/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	engine := domainpricing.NewEngine(domainpricing.Config{
		TaxRate:                 cfg.TaxRate,
		IncludedDistancePerDay:  cfg.IncludedDistancePerDay,
		LateFeePerHour:          cfg.LateFeePerHour,
		ExtraDistanceFeePerUnit: cfg.ExtraDistanceFeePerUnit,
		FuelFeePerPercent:       cfg.FuelFeePerPercent,
		Currency:                cfg.Currency,
	})
	pricingPort := policies.EnginePricingPort{Calculator: engine}

	var (
		uowFactory uow.UoWFactory
		outboxDest appoutbox.Outbox
	)
	readiness := func() error { return nil }

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("mongo connect failed", "error", err)
			os.Exit(1)
		}
		uowFactory = mongodb.NewFactory(client.DB, cfg.PrepBufferHours)
		store := infraoutbox.NewStore(client.DB)
		outboxDest = store
		readiness = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		startOutboxWorker(ctx, cfg, store, logger)
	default:
		uowFactory = memory.Factory{
			VehicleRepo:      memory.NewVehicleRepository(),
			CustomerRepo:     memory.NewCustomerRepository(),
			BookingRepo:      memory.NewBookingRepository(),
			ScheduleRepo:     memory.NewScheduleRepository(cfg.PrepBufferHours),
			ServiceOrderRepo: memory.NewServiceOrderRepository(),
			PaymentRepo:      memory.NewPaymentRepository(),
		}
		outboxDest = memory.NewOutbox()
		logger.Info("running on in-memory storage; data is not durable")
	}

	commandBus, queryBus := buildBuses(uowFactory, pricingPort, outboxDest)
	idStore := memory.NewIdempotencyStore()
	idStore.TTL = cfg.IdempotencyTTL

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(),
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxDest),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	handlers := ginserver.Handlers{
		Booking:      ginserver.BookingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Vehicle:      ginserver.VehicleHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Pricing:      ginserver.PricingHandler{Queries: queryBusWithMiddleware},
		Availability: ginserver.AvailabilityHandler{Queries: queryBusWithMiddleware},
		Customer:     ginserver.CustomerHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: readiness}, handlers)

	sweeper := startOverdueSweep(ctx, cfg, uowFactory, outboxDest, logger)
	defer sweeper.Stop()

	startEventConsumer(ctx, cfg, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildBuses(factory uow.UoWFactory, pricing policies.PricingPort, box appoutbox.Outbox) (*commands.InMemoryBus, *queries.InMemoryBus) {
	encoder := appoutbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.ReserveBookingCommand{}.Key(), &bookingapp.ReserveBookingHandler{
		UoWFactory: factory, Pricing: pricing, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, bookingapp.StartRentalCommand{}.Key(), &bookingapp.StartRentalHandler{
		UoWFactory: factory, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, bookingapp.CompleteRentalCommand{}.Key(), &bookingapp.CompleteRentalHandler{
		UoWFactory: factory, Pricing: pricing, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, bookingapp.CancelBookingCommand{}.Key(), &bookingapp.CancelBookingHandler{
		UoWFactory: factory, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, vehiclesapp.RegisterVehicleCommand{}.Key(), &vehiclesapp.RegisterVehicleHandler{
		UoWFactory: factory, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, vehiclesapp.UpdateRatesCommand{}.Key(), &vehiclesapp.UpdateRatesHandler{
		UoWFactory: factory, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, vehiclesapp.ScheduleServiceCommand{}.Key(), &vehiclesapp.ScheduleServiceHandler{
		UoWFactory: factory,
	})
	commands.RegisterHandler(commandBus, vehiclesapp.CompleteServiceCommand{}.Key(), &vehiclesapp.CompleteServiceHandler{
		UoWFactory: factory,
	})
	commands.RegisterHandler(commandBus, customersapp.RegisterCustomerCommand{}.Key(), &customersapp.RegisterCustomerHandler{
		UoWFactory: factory,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.GetBookingQuery{}.Key(), &bookingapp.GetBookingHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, bookingapp.ListCustomerBookingsQuery{}.Key(), &bookingapp.ListCustomerBookingsHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, vehiclesapp.ListVehiclesQuery{}.Key(), &vehiclesapp.ListVehiclesHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, vehiclesapp.GetVehicleQuery{}.Key(), &vehiclesapp.GetVehicleHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, pricingapp.QuoteQuery{}.Key(), &pricingapp.QuoteHandler{UoWFactory: factory, Pricing: pricing})
	queries.RegisterHandler(queryBus, availabilityapp.CheckQuery{}.Key(), &availabilityapp.CheckHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, availabilityapp.GetScheduleQuery{}.Key(), &availabilityapp.GetScheduleHandler{UoWFactory: factory})

	return commandBus, queryBus
}

func startOutboxWorker(ctx context.Context, cfg config.Config, store *infraoutbox.Store, logger *slog.Logger) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("kafka brokers not configured; staged events stay in the outbox")
		return
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Error("kafka producer init failed", "error", err)
		return
	}
	worker := &infraoutbox.Worker{
		Store:       store,
		Producer:    producer,
		Logger:      logger,
		Interval:    cfg.OutboxPollInterval,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Backoff:     []time.Duration{time.Second, 5 * time.Second, 30 * time.Second},
	}
	go func() {
		defer producer.Close()
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("outbox worker stopped", "error", err)
		}
	}()
}

func startOverdueSweep(ctx context.Context, cfg config.Config, factory uow.UoWFactory, box appoutbox.Outbox, logger *slog.Logger) *cron.Cron {
	sweep := &schedule.OverdueSweep{
		UoWFactory: factory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
		Notifier:   obs.LogNotifier{Logger: logger},
		Logger:     logger,
	}
	c := cron.New()
	if _, err := c.AddFunc(cfg.OverdueSweepSpec, func() {
		if err := sweep.Run(ctx); err != nil {
			logger.Error("overdue sweep failed", "error", err)
		}
	}); err != nil {
		logger.Error("overdue sweep schedule invalid", "spec", cfg.OverdueSweepSpec, "error", err)
	}
	c.Start()
	return c
}

func startEventConsumer(ctx context.Context, cfg config.Config, logger *slog.Logger) {
	if len(cfg.KafkaBrokers) == 0 {
		return
	}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, "fleetrent-audit", nil, kafka.FleetEventLogger{Logger: logger})
	if err != nil {
		logger.Error("kafka consumer init failed", "error", err)
		return
	}
	topics := []string{
		cfg.KafkaTopicPrefix + "booking.events.v1",
		cfg.KafkaTopicPrefix + "vehicle.events.v1",
	}
	go func() {
		defer consumer.Close()
		if err := consumer.Run(ctx, topics); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("event consumer stopped", "error", err)
		}
	}()
}
