package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Entity kinds carried by ledger change notifications.
const (
	EntityArtist  = "artist"
	EntityVenue   = "venue"
	EntityConcert = "concert"
	EntityTicket  = "ticket"
)

// Change announces that a ledger entity was mutated.
type Change struct {
	MessageID string `json:"message_id"`
	Type      string `json:"type"`
	Entity    string `json:"entity"`
	ID        uint64 `json:"id"`
	TsUnix    int64  `json:"ts_unix"`
}

type LedgerPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewLedgerPubSub(rdb *redis.Client) *LedgerPubSub {
	return &LedgerPubSub{
		rdb:     rdb,
		channel: ChannelLedgerChanged(),
	}
}

func (p *LedgerPubSub) PublishChanged(ctx context.Context, changeType, entity string, id uint64) error {
	if p == nil {
		return nil
	}

	msg := Change{
		MessageID: uuid.NewString(),
		Type:      changeType,
		Entity:    entity,
		ID:        id,
		TsUnix:    time.Now().Unix(),
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe delivers changes to handler until ctx is done. Malformed
// payloads are skipped.
func (p *LedgerPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, ch Change)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var c Change
			if err := json.Unmarshal([]byte(m.Payload), &c); err == nil &&
				c.Entity != "" && c.ID != 0 {
				handler(ctx, c)
			}
		}
	}
}
