package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher hands settlement events to the broker.
type Publisher interface {
	PublishSettled(ctx context.Context, ev ConcertSettled) error
	Close() error
}

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   channel
	log  *slog.Logger
	now  func() time.Time
}

// Dial connects to url and declares the settlement queue.
func Dial(url string, log *slog.Logger) (*AMQPPublisher, error) {
	const op = "queue.Dial"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: channel: %w", op, err)
	}

	p, err := newAMQPPublisher(ch, log)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.conn = conn

	return p, nil
}

func newAMQPPublisher(ch channel, log *slog.Logger) (*AMQPPublisher, error) {
	if _, err := ch.QueueDeclare(
		SettlementQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}

	return &AMQPPublisher{ch: ch, log: log, now: time.Now}, nil
}

func (p *AMQPPublisher) PublishSettled(ctx context.Context, ev ConcertSettled) error {
	const op = "queue.AMQPPublisher.PublishSettled"

	msg, err := encode(ev, p.now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// amqp channels are not safe for concurrent publishes
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", SettlementQueue, false, false, msg); err != nil {
		p.log.Error("settlement publish failed",
			slog.Uint64("concert_id", ev.ConcertID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	p.log.Debug("settlement published",
		slog.Uint64("concert_id", ev.ConcertID),
		slog.String("message_id", ev.MessageID),
	)

	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}

	return err
}

func encode(ev ConcertSettled, ts time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.MessageID,
		Timestamp:    ts.UTC(),
		Body:         body,
	}, nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSettled(context.Context, ConcertSettled) error { return nil }
func (NopPublisher) Close() error                                         { return nil }
