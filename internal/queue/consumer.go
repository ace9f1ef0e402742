package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one settlement event. A returned error rejects the
// delivery without requeueing it.
type Handler func(ctx context.Context, ev ConcertSettled) error

// ConsumeSettled reads the settlement queue until ctx is done, reconnecting
// with exponential backoff when the broker goes away.
func ConsumeSettled(ctx context.Context, url string, log *slog.Logger, handle Handler) error {
	backoff := time.Second

	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("settlement consumer dial failed",
				slog.String("err", err.Error()),
				slog.Duration("retry_in", backoff),
			)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, log, handle)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		log.Warn("settlement consumer stopped, reconnecting", slog.Any("err", err))
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, log *slog.Logger, handle Handler) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("settlement consumer qos failed", slog.String("err", err.Error()))
	}

	if _, err := ch.QueueDeclare(SettlementQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, SettlementQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return amqp.ErrClosed
			}
			dispatch(ctx, d, log, handle)
		}
	}
}

// acknowledger is the part of amqp.Delivery dispatch settles.
type acknowledger interface {
	Ack(multiple bool) error
	Reject(requeue bool) error
}

func dispatch(ctx context.Context, d amqp.Delivery, log *slog.Logger, handle Handler) {
	settle(ctx, &d, d.Body, log, handle)
}

func settle(ctx context.Context, ack acknowledger, body []byte, log *slog.Logger, handle Handler) {
	var ev ConcertSettled
	if err := json.Unmarshal(body, &ev); err != nil {
		log.Error("settlement event malformed", slog.String("err", err.Error()))
		_ = ack.Reject(false)
		return
	}

	if err := handle(ctx, ev); err != nil {
		log.Error("settlement event handler failed",
			slog.Uint64("concert_id", ev.ConcertID),
			slog.String("err", err.Error()),
		)
		_ = ack.Reject(false)
		return
	}

	_ = ack.Ack(false)
}
