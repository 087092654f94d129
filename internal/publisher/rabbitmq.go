package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"flight_tracker/internal/domain"
)

// RabbitMQ publishes pass reports to a durable direct exchange.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	err = ch.QueueBind(
		q.Name,
		cfg.RoutingKey,
		cfg.Exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

const (
	ActionReconcile = "reconcile"
	ActionIngest    = "ingest"
)

// PassReport announces the outcome of a pass over one day's dataset.
type PassReport struct {
	Action        string        `json:"action"`
	Date          string        `json:"date"`
	Total         int           `json:"total"`
	Eligible      int           `json:"eligible"`
	Updated       int           `json:"updated"`
	FailedFlights []string      `json:"failedFlights"`
	Duration      time.Duration `json:"duration"`
	Timestamp     time.Time     `json:"timestamp"`
}

func (r *RabbitMQ) PublishPass(ctx context.Context, result *domain.PassResult) error {
	return r.publish(ctx, ActionReconcile, result.Date, PassReport{
		Action:        ActionReconcile,
		Date:          result.Date,
		Total:         result.Total,
		Eligible:      result.Eligible,
		Updated:       result.Updated,
		FailedFlights: result.FailedFlights,
		Duration:      result.Duration,
		Timestamp:     time.Now().UTC(),
	})
}

// IngestReport announces a freshly built dataset.
type IngestReport struct {
	Action            string        `json:"action"`
	Date              string        `json:"date"`
	Requested         int           `json:"requested"`
	Processed         int           `json:"processed"`
	UnresolvedFlights []string      `json:"unresolvedFlights"`
	Duration          time.Duration `json:"duration"`
	Timestamp         time.Time     `json:"timestamp"`
}

func newIngestReport(result *domain.IngestResult, now time.Time) IngestReport {
	return IngestReport{
		Action:            ActionIngest,
		Date:              result.Date,
		Requested:         result.Requested,
		Processed:         result.Processed,
		UnresolvedFlights: result.UnresolvedFlights,
		Duration:          result.Duration,
		Timestamp:         now.UTC(),
	}
}

func (r *RabbitMQ) PublishIngest(ctx context.Context, result *domain.IngestResult) error {
	return r.publish(ctx, ActionIngest, result.Date, newIngestReport(result, time.Now()))
}

func (r *RabbitMQ) publish(ctx context.Context, action, date string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published report",
		"action", action,
		"date", date,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
