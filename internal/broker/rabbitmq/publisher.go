// Package rabbitmq публикует уведомления в fanout-обменник RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
	"github.com/shenikar/geo_monitoring_pipeline/internal/notify"
)

var _ notify.Sender = (*Publisher)(nil)

const (
	exchangeName = "monitoring.notifications"
	queueName    = "subject_notifications"
)

// Channel - методы *amqp.Channel, которые использует Publisher
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	ch Channel
}

// NewPublisher объявляет обменник, очередь и привязку между ними
func NewPublisher(ch Channel) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &Publisher{ch: ch}, nil
}

// Send публикует уведомление; роль получателя дублируется в заголовках,
// чтобы потребители могли фильтровать без разбора тела
func (p *Publisher) Send(ctx context.Context, payload *models.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    payload.ID,
		Timestamp:    payload.OccurredAt,
		Headers: amqp.Table{
			"recipient_role": string(payload.RecipientRole),
			"risk_state":     string(payload.RiskState),
		},
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
