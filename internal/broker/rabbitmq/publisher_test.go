package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

type mockChannel struct {
	ExchangeDeclareFn    func(name, kind string) error
	QueueDeclareFn       func(name string) error
	PublishWithContextFn func(ctx context.Context, exchange, key string, msg amqp.Publishing) error

	bound [][2]string
}

func (m *mockChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	if m.ExchangeDeclareFn != nil {
		return m.ExchangeDeclareFn(name, kind)
	}
	return nil
}

func (m *mockChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	if m.QueueDeclareFn != nil {
		if err := m.QueueDeclareFn(name); err != nil {
			return amqp.Queue{}, err
		}
	}
	return amqp.Queue{Name: name}, nil
}

func (m *mockChannel) QueueBind(name, _, exchange string, _ bool, _ amqp.Table) error {
	m.bound = append(m.bound, [2]string{name, exchange})
	return nil
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if m.PublishWithContextFn != nil {
		return m.PublishWithContextFn(ctx, exchange, key, msg)
	}
	return nil
}

var _ Channel = (*mockChannel)(nil)

func TestNewPublisher_DeclaresTopology(t *testing.T) {
	var kind string
	ch := &mockChannel{
		ExchangeDeclareFn: func(_, k string) error {
			kind = k
			return nil
		},
	}

	_, err := NewPublisher(ch)
	require.NoError(t, err)
	assert.Equal(t, "fanout", kind)
	assert.Equal(t, [][2]string{{queueName, exchangeName}}, ch.bound)
}

func TestNewPublisher_DeclareError(t *testing.T) {
	ch := &mockChannel{
		QueueDeclareFn: func(string) error { return errors.New("access refused") },
	}

	_, err := NewPublisher(ch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declare queue")
}

func TestSend(t *testing.T) {
	var published amqp.Publishing
	var exchange string
	ch := &mockChannel{
		PublishWithContextFn: func(_ context.Context, ex, _ string, msg amqp.Publishing) error {
			exchange = ex
			published = msg
			return nil
		},
	}
	p, err := NewPublisher(ch)
	require.NoError(t, err)

	payload := &models.NotificationPayload{
		ID:            "n-1",
		SubjectID:     "X",
		RecipientRole: models.RoleSubject,
		RiskState:     models.RiskWarning,
		Body:          "body",
		OccurredAt:    time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Send(context.Background(), payload))

	assert.Equal(t, exchangeName, exchange)
	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, "n-1", published.MessageId)
	assert.Equal(t, "SUBJECT", published.Headers["recipient_role"])

	var decoded models.NotificationPayload
	require.NoError(t, json.Unmarshal(published.Body, &decoded))
	assert.Equal(t, "X", decoded.SubjectID)
}

func TestSend_PublishError(t *testing.T) {
	pubErr := errors.New("channel closed")
	ch := &mockChannel{
		PublishWithContextFn: func(context.Context, string, string, amqp.Publishing) error { return pubErr },
	}
	p, err := NewPublisher(ch)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Send(context.Background(), &models.NotificationPayload{ID: "n-1"}), pubErr)
}
