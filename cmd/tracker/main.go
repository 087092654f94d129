package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"flight_tracker/internal/api"
	"flight_tracker/internal/config"
	"flight_tracker/internal/domain"
	"flight_tracker/internal/observability"
	"flight_tracker/internal/publisher"
	"flight_tracker/internal/scheduler"
	"flight_tracker/internal/service"
	"flight_tracker/internal/sheets"
	"flight_tracker/internal/source/avianca"
	"flight_tracker/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	run := flag.String("run", "serve", "what to run: serve|ingest|reconcile|export|prune")
	exportDate := flag.String("date", "", "day to export (YYYY-MM-DD), defaults to today")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	loc, err := cfg.Reconcile.Location()
	if err != nil {
		logger.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	clock := clockwork.NewRealClock()

	// Stores
	flightStore := postgres.NewFlightStore(db)
	passStateStore := postgres.NewPassStateStore(db)
	txManager := postgres.NewTransactionManager(db)

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	statusSource := avianca.New(avianca.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		RateLimit:      cfg.API.RateLimit,
		Burst:          cfg.API.Burst,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
	}, metrics, logger)

	reconcileService := service.NewReconcileService(
		statusSource,
		flightStore,
		passStateStore,
		txManager,
		pub,
		metrics,
		logger,
		cfg.Reconcile,
		loc,
	)

	var (
		ingestService *service.IngestService
		exportService *service.ExportService
	)
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsClient, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			RosterSheet:   cfg.Sheets.RosterSheet,
			ExportSheet:   cfg.Sheets.ExportSheet,
		}, logger, option.WithCredentialsFile(cfg.Sheets.CredentialsFile))
		if err != nil {
			logger.Error("failed to create sheets client", "error", err)
			os.Exit(1)
		}
		ingestService = service.NewIngestService(
			statusSource,
			sheetsClient,
			flightStore,
			txManager,
			pub,
			logger,
			cfg.Ingest,
			loc,
			cfg.Reconcile.DelayLabels,
		)
		exportService = service.NewExportService(flightStore, sheetsClient, logger)
	}

	switch *run {
	case "serve":
		err = serve(ctx, cfg, db, flightStore, reconcileService, ingestService, exportService, metrics, clock, loc, logger)
	case "reconcile":
		var result *domain.PassResult
		result, err = reconcileService.Reconcile(ctx, clock.Now())
		if err == nil {
			logger.Info("reconcile done", "updated", result.Updated, "failed", len(result.FailedFlights))
		}
	case "ingest":
		if ingestService == nil {
			err = errors.New("sheets.spreadsheet_id is required for ingest")
			break
		}
		var result *domain.IngestResult
		result, err = ingestService.Ingest(ctx, clock.Now())
		if err == nil {
			logger.Info("ingest done", "processed", result.Processed, "unresolved", len(result.UnresolvedFlights))
		}
	case "export":
		if exportService == nil {
			err = errors.New("sheets.spreadsheet_id is required for export")
			break
		}
		date := *exportDate
		if date == "" {
			date = domain.DateKey(clock.Now(), loc)
		}
		_, err = exportService.Export(ctx, date)
	case "prune":
		retention := service.NewRetentionService(flightStore, passStateStore, txManager, cfg.Retention.KeepDays, loc, logger)
		_, err = retention.Prune(ctx, clock.Now())
	default:
		err = errors.New("unknown -run value " + *run)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("run failed", "run", *run, "error", err)
		os.Exit(1)
	}
}

func serve(
	ctx context.Context,
	cfg *config.Config,
	db *sqlx.DB,
	flights *postgres.FlightStore,
	reconciler *service.ReconcileService,
	ingester *service.IngestService,
	exporter *service.ExportService,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	loc *time.Location,
	logger *slog.Logger,
) error {
	readCache := api.NewReadCache(cfg.HTTP.CacheTTL)
	deps := api.Deps{
		Flights:    flights,
		DB:         db,
		Reconciler: reconciler,
		Metrics:    metrics,
		Gatherer:   prometheus.DefaultGatherer,
		Clock:      clock,
		Location:   loc,
		Cache:      readCache,
		CronSecret: cfg.HTTP.CronSecret,
		Logger:     logger,
	}
	if ingester != nil {
		deps.Ingester = ingester
	}
	if exporter != nil {
		deps.Exporter = exporter
	}

	server := api.NewServer(cfg.HTTP.Addr, api.NewRouter(deps), logger)
	sched := scheduler.NewScheduler(reconciler, clock, cfg.Reconcile.Interval, cfg.Reconcile.PassTimeout, logger)
	sched.OnPassCompleted(readCache.Flush)

	logger.Info("starting flight tracker",
		"interval", cfg.Reconcile.Interval,
		"window", cfg.Reconcile.Window,
		"timezone", loc.String(),
		"addr", cfg.HTTP.Addr,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sched.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
