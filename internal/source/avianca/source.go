package avianca

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"flight_tracker/internal/domain"
	"flight_tracker/internal/observability"
)

const (
	SourceID   = "avianca"
	SourceName = "Avianca Flight Status"

	origin    = "https://informacionvuelo.avianca.com"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Config holds status API configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimit      float64
	Burst          int
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source looks up flight statuses on the Avianca status API.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	limiter        *rate.Limiter
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	metrics        *observability.Metrics
	logger         *slog.Logger
}

// New creates a new Avianca source.
func New(cfg Config, metrics *observability.Metrics, logger *slog.Logger) *Source {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		limiter:        rate.NewLimiter(limit, burst),
		maxAttempts:    attempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		metrics:        metrics,
		logger:         logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// FetchStatus looks up one flight on one date. An empty slice means the API
// answered with no matching flights. When every attempt fails the error wraps
// domain.ErrUnresolved.
func (s *Source) FetchStatus(ctx context.Context, flightNumber, date string) ([]domain.StatusUpdate, error) {
	var raws []FlightStatusResponse
	var err error

	attempt := 1
	for ; attempt <= s.maxAttempts; attempt++ {
		raws, err = s.doRequest(ctx, flightNumber, date)
		if err == nil {
			s.metrics.FetchAttempts.WithLabelValues("success").Inc()
			return normalizeAll(raws), nil
		}
		s.metrics.FetchAttempts.WithLabelValues("error").Inc()

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"flight_number", flightNumber,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		if !sleepWithContext(ctx, backoff) {
			err = ctx.Err()
			break
		}
	}

	s.logger.Error("flight status unresolved",
		"flight_number", flightNumber,
		"date", date,
		"attempts", attempt,
		"error", err,
	)
	return nil, fmt.Errorf("%w: flight %s after %d attempts: %w", domain.ErrUnresolved, flightNumber, attempt, err)
}

func (s *Source) doRequest(ctx context.Context, flightNumber, date string) ([]FlightStatusResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, err := json.Marshal(statusRequest{
		Date:         date,
		Language:     "en",
		FlightNumber: flightNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", origin)
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	s.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		s.logger.Warn("non-JSON response",
			"flight_number", flightNumber,
			"content_type", contentType,
			"body", string(snippet),
		)
		return nil, fmt.Errorf("unexpected content type %q", contentType)
	}

	var raws []FlightStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return raws, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if s.maxBackoff > 0 && backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
