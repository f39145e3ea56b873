package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"travelbook/logger"
	"travelbook/models"
)

const TravelEventsChannel = "travel-index-events"

// Emitter is what handlers publish travel changes through.
type Emitter interface {
	Emit(ctx context.Context, evt models.TravelEvent) error
}

// Publisher publishes travel events on a redis pub/sub channel.
type Publisher struct {
	conn    *redis.Client
	channel string
	log     *logger.Logger
}

func NewPublisher(conn *redis.Client, log *logger.Logger) *Publisher {
	return &Publisher{conn: conn, channel: TravelEventsChannel, log: log}
}

func (p *Publisher) Emit(ctx context.Context, evt models.TravelEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal travel event: %w", err)
	}
	if err := p.conn.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}
	p.log.Debug("travel event published", "channel", p.channel, "method", evt.Method, "entity", evt.EntityType, "entityId", evt.EntityID)
	return nil
}

// Notifier only logs events. Used when no redis is configured.
type Notifier struct {
	log *logger.Logger
}

func NewNotifier(log *logger.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Emit(_ context.Context, evt models.TravelEvent) error {
	n.log.Debug("travel event", "method", evt.Method, "entity", evt.EntityType, "entityId", evt.EntityID, "travelId", evt.TravelID)
	return nil
}
