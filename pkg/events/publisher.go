package events

import (
	"context"
	"encoding/json"

	"waitline/waitline-queue-server/pkg/infra"
	"waitline/waitline-queue-server/pkg/msg"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Channel carrying every queue event, for dashboards and other
// consumers outside this process.
const Channel = "waitline.queue.events"

// Publisher pushes queue events to redis pub/sub. Fire and forget: a
// failed publish is logged and never surfaced to the request that
// triggered the event.
type Publisher struct {
	redisClient *redis.Client
	logger      *zap.SugaredLogger
}

func ProvidePublisher(redisClient *redis.Client, loggerFactory *infra.LoggerFactory) *Publisher {
	return &Publisher{
		redisClient: redisClient,
		logger:      loggerFactory.Create("Publisher").Sugar(),
	}
}

// Enabled reports whether a redis client is configured.
func (p *Publisher) Enabled() bool {
	return p.redisClient != nil
}

func (p *Publisher) Publish(ctx context.Context, wsMessage *msg.WsMessage) {
	if !p.Enabled() {
		return
	}

	raw, err := json.Marshal(wsMessage)
	if err != nil {
		p.logger.Errorf("cannot marshal event for publishing %v", err)
		return
	}

	if err := p.redisClient.Publish(ctx, Channel, raw).Err(); err != nil {
		p.logger.Errorf("cannot publish event to channel[%v] %v", Channel, err)
	}
}
