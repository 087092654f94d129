package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"flight_tracker/internal/domain"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

type flightsResponse struct {
	response
	Count   int                   `json:"count"`
	Flights []domain.FlightRecord `json:"flights"`
}

type summaryResponse struct {
	response
	Summary domain.Summary `json:"summary"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *handlers) writeError(w http.ResponseWriter, date, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDatasetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyRoster):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoneResolved):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, "date", date, "error", err)
	}
	writeJSON(w, status, response{Message: message, Date: date, Error: err.Error()})
}

// resolveDate accepts YYYY-MM-DD, or "today" / "" for the current operating day.
func (h *handlers) resolveDate(raw string) (string, error) {
	if raw == "" || raw == "today" {
		return domain.DateKey(h.clock.Now(), h.loc), nil
	}
	if _, err := time.Parse(domain.DateLayout, raw); err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return raw, nil
}

// dataset returns the stored records for date through the read cache.
func (h *handlers) dataset(ctx context.Context, date string) ([]domain.FlightRecord, error) {
	if cached, ok := h.cache.get(date); ok {
		return cached, nil
	}

	records, err := h.flights.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	h.cache.set(date, records)
	return records, nil
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: "ok"})
}

func (h *handlers) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, response{Message: "database unavailable", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "ready"})
}

func (h *handlers) listFlights(w http.ResponseWriter, r *http.Request) {
	date, err := h.resolveDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: err.Error()})
		return
	}

	records, err := h.dataset(r.Context(), date)
	if err != nil {
		h.writeError(w, date, "Failed to read flights", err)
		return
	}

	if r.URL.Query().Get("all") != "true" {
		records = domain.DisplayFlights(records)
	}

	writeJSON(w, http.StatusOK, flightsResponse{
		response: response{Success: true, Message: "Flights retrieved", Date: date},
		Count:    len(records),
		Flights:  records,
	})
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	date, err := h.resolveDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: err.Error()})
		return
	}

	records, err := h.dataset(r.Context(), date)
	if err != nil {
		h.writeError(w, date, "Failed to read flights", err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		response: response{Success: true, Message: "Summary computed", Date: date},
		Summary:  domain.Summarize(domain.DisplayFlights(records)),
	})
}

func (h *handlers) reconcile(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	date := domain.DateKey(now, h.loc)

	result, err := h.reconciler.Reconcile(r.Context(), now)
	if err != nil {
		h.writeError(w, date, "Reconcile pass failed", err)
		return
	}
	h.cache.Flush()

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: fmt.Sprintf("Updated %d of %d eligible flights", result.Updated, result.Eligible),
		Date:    result.Date,
		Result:  result,
	})
}

func (h *handlers) ingest(w http.ResponseWriter, r *http.Request) {
	if h.ingester == nil {
		writeJSON(w, http.StatusServiceUnavailable, response{Message: "Roster source not configured"})
		return
	}

	now := h.clock.Now()
	date := domain.DateKey(now, h.loc)

	result, err := h.ingester.Ingest(r.Context(), now)
	if err != nil {
		h.writeError(w, date, "Ingest failed", err)
		return
	}
	h.cache.Flush()

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: fmt.Sprintf("Processed %d of %d flights", result.Processed, result.Requested),
		Date:    result.Date,
		Result:  result,
	})
}

func (h *handlers) export(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		writeJSON(w, http.StatusServiceUnavailable, response{Message: "Spreadsheet sink not configured"})
		return
	}

	date, err := h.resolveDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: err.Error()})
		return
	}

	rows, err := h.exporter.Export(r.Context(), date)
	if err != nil {
		h.writeError(w, date, "Export failed", err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: fmt.Sprintf("Exported %d flights", rows),
		Date:    date,
		Result:  map[string]int{"rows": rows},
	})
}
