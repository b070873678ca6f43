package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

const (
	notificationQueueKey = "notification_events"
)

// Queue - операции Redis-списка, которые использует очередь уведомлений
type Queue interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// RedisPublisher кладет уведомления в Redis-список, откуда их забирает Worker
type RedisPublisher struct {
	queue Queue
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(queue Queue) *RedisPublisher {
	return &RedisPublisher{
		queue: queue,
	}
}

// Send публикует уведомление в очередь Redis
func (p *RedisPublisher) Send(ctx context.Context, payload *models.NotificationPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// LPUSH добавляет в левую часть списка, Worker забирает справа через BRPOP
	if err := p.queue.LPush(ctx, notificationQueueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to Redis: %w", err)
	}
	return nil
}
