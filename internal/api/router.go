package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flight_tracker/internal/domain"
	"flight_tracker/internal/observability"
)

type FlightReader interface {
	ListByDate(ctx context.Context, date string) ([]domain.FlightRecord, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Reconciler interface {
	Reconcile(ctx context.Context, now time.Time) (*domain.PassResult, error)
}

type Ingester interface {
	Ingest(ctx context.Context, now time.Time) (*domain.IngestResult, error)
}

type Exporter interface {
	Export(ctx context.Context, date string) (int, error)
}

// Deps wires the router. Ingester and Exporter may be nil when the
// spreadsheet integration is not configured. Without a Cache the router
// builds its own from CacheTTL.
type Deps struct {
	Flights    FlightReader
	DB         Pinger
	Reconciler Reconciler
	Ingester   Ingester
	Exporter   Exporter
	Metrics    *observability.Metrics
	Gatherer   prometheus.Gatherer
	Clock      clockwork.Clock
	Location   *time.Location
	Cache      *ReadCache
	CacheTTL   time.Duration
	CronSecret string
	Logger     *slog.Logger
}

type handlers struct {
	flights    FlightReader
	db         Pinger
	reconciler Reconciler
	ingester   Ingester
	exporter   Exporter
	clock      clockwork.Clock
	loc        *time.Location
	cache      *ReadCache
	logger     *slog.Logger
}

func NewRouter(deps Deps) http.Handler {
	readCache := deps.Cache
	if readCache == nil {
		readCache = NewReadCache(deps.CacheTTL)
	}

	h := &handlers{
		flights:    deps.Flights,
		db:         deps.DB,
		reconciler: deps.Reconciler,
		ingester:   deps.Ingester,
		exporter:   deps.Exporter,
		clock:      deps.Clock,
		loc:        deps.Location,
		cache:      readCache,
		logger:     deps.Logger.With("component", "api"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics(deps.Metrics, h.logger))

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/flights", func(flights chi.Router) {
		flights.Group(func(cron chi.Router) {
			cron.Use(bearerAuth(deps.CronSecret))
			cron.Post("/ingest", h.ingest)
			cron.Post("/reconcile", h.reconcile)
			cron.Post("/export", h.export)
		})
		flights.Get("/{date}", h.listFlights)
		flights.Get("/{date}/summary", h.summary)
	})

	return r
}
