package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"flight_tracker/internal/domain"
)

const (
	valueInputUserEntered = "USER_ENTERED"
	insertDataInsertRows  = "INSERT_ROWS"
)

// rosterColumns maps a weekday to its roster column. Monday is column A.
var rosterColumns = map[time.Weekday]string{
	time.Monday:    "A",
	time.Tuesday:   "B",
	time.Wednesday: "C",
	time.Thursday:  "D",
	time.Friday:    "E",
	time.Saturday:  "F",
	time.Sunday:    "G",
}

type Config struct {
	SpreadsheetID string
	RosterSheet   string
	ExportSheet   string
}

// Client reads the weekly roster from and appends exports to one spreadsheet.
type Client struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
	rosterSheet   string
	exportSheet   string
	logger        *slog.Logger
}

// New creates a Sheets client. Pass option.WithCredentialsFile in production.
func New(ctx context.Context, cfg Config, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}, opts...)

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		rosterSheet:   cfg.RosterSheet,
		exportSheet:   cfg.ExportSheet,
		logger:        logger.With("component", "sheets"),
	}, nil
}

// RosterRange returns the A1 range holding the roster for weekday, header excluded.
func RosterRange(sheet string, weekday time.Weekday) string {
	col := rosterColumns[weekday]
	return fmt.Sprintf("%s!%s2:%s", sheet, col, col)
}

// FlightNumbers returns the non-empty roster cells for weekday, top to bottom.
func (c *Client) FlightNumbers(ctx context.Context, weekday time.Weekday) ([]string, error) {
	rng := RosterRange(c.rosterSheet, weekday)

	resp, err := c.values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rng, err)
	}

	var numbers []string
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(fmt.Sprint(row[0]))
		if cell != "" {
			numbers = append(numbers, cell)
		}
	}

	c.logger.Debug("roster loaded", "range", rng, "flights", len(numbers))
	return numbers, nil
}

// AppendFlights appends one row per record to the export sheet.
func (c *Client) AppendFlights(ctx context.Context, records []domain.FlightRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row(r))
	}

	rng := c.exportSheet + "!A:H"
	_, err := c.values.Append(c.spreadsheetID, rng, &gsheets.ValueRange{Values: rows}).
		ValueInputOption(valueInputUserEntered).
		InsertDataOption(insertDataInsertRows).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append range %s: %w", rng, err)
	}

	c.logger.Debug("rows appended", "range", rng, "rows", len(rows))
	return nil
}

// Row renders a record as date, flight number, from, to, status, etd, atd, delay category.
func Row(r domain.FlightRecord) []interface{} {
	category := ""
	if r.DelayCategory != nil {
		category = *r.DelayCategory
	}
	return []interface{}{
		r.Date,
		r.FlightNumber,
		r.From,
		r.To,
		string(r.Status),
		r.ETD,
		r.ATD,
		category,
	}
}
