package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/farellandr/liveticket/internal/models"
)

const (
	TopicEventInitialized = "event.initialized"
	TopicPaymentRequired  = "payment.required"
	TopicTicketPurchased  = "ticket.purchased"
)

const publishTimeout = 5 * time.Second

// dialTimeout bounds connecting and the AMQP handshake on every (re)dial.
var dialTimeout = 5 * time.Second

// Topic returns the routing key an event type is published under.
func Topic(eventType string) string {
	switch eventType {
	case models.EventInitialized:
		return TopicEventInitialized
	case models.EventPaymentRequired:
		return TopicPaymentRequired
	case models.EventTicketPurchased:
		return TopicTicketPurchased
	default:
		return "ledger." + eventType
	}
}

// Publisher is the subset of *amqp.Channel the sink needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSink publishes events as JSON to a RabbitMQ topic exchange.
type AMQPSink struct {
	mu       sync.Mutex
	url      string
	exchange string
	conn     *amqp.Connection
	channel  Publisher
	logger   *slog.Logger
}

// DialAMQP connects to url and declares exchange as a durable topic
// exchange.
func DialAMQP(url, exchange string, logger *slog.Logger) (*AMQPSink, error) {
	s := &AMQPSink{url: url, exchange: exchange, logger: logger}
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewAMQPSink publishes through an already open channel.
func NewAMQPSink(p Publisher, exchange string, logger *slog.Logger) *AMQPSink {
	return &AMQPSink{channel: p, exchange: exchange, logger: logger}
}

func (s *AMQPSink) connect() error {
	conn, err := amqp.DialConfig(s.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		s.exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %s: %w", s.exchange, err)
	}
	s.conn = conn
	s.channel = ch
	return nil
}

func (s *AMQPSink) ensureConnection() error {
	if s.url == "" || (s.conn != nil && !s.conn.IsClosed()) {
		return nil
	}
	return s.connect()
}

func (s *AMQPSink) Emit(ctx context.Context, ev models.LedgerEvent) {
	if err := s.publish(ctx, ev); err != nil {
		s.logger.Warn("event_publish_failed", "type", ev.Type, "error", err)
	}
}

func (s *AMQPSink) publish(ctx context.Context, ev models.LedgerEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureConnection(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	return s.channel.PublishWithContext(ctx,
		s.exchange,
		Topic(ev.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
			Body:         body,
		},
	)
}

func (s *AMQPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
