package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 2 * time.Second

// Publisher отправляет отчет о местоположении в тот же топик, который слушает Subscriber
type Publisher struct {
	client mqtt.Client
	topic  string
}

// NewPublisher принимает шаблон топика подписки; "+" заменяется на subject_id
func NewPublisher(client mqtt.Client, topicPattern string) *Publisher {
	return &Publisher{client: client, topic: topicPattern}
}

// locationMessage - формат сообщения во входном топике
type locationMessage struct {
	SubjectID  string  `json:"subject_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ObservedAt string  `json:"observed_at,omitempty"`
}

// PublishLocation публикует отчет с QoS 1 и ждет подтверждения брокера
func (p *Publisher) PublishLocation(ctx context.Context, subjectID string, lat, lon float64, observedAt time.Time) error {
	if !validTopicSegment(subjectID) {
		return fmt.Errorf("subject_id %q cannot be used in a topic", subjectID)
	}

	msg := locationMessage{
		SubjectID: subjectID,
		Latitude:  lat,
		Longitude: lon,
	}
	if !observedAt.IsZero() {
		msg.ObservedAt = observedAt.UTC().Format(time.RFC3339Nano)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}

	if !p.client.IsConnected() {
		return fmt.Errorf("mqtt not connected")
	}

	token := p.client.Publish(p.topicFor(subjectID), 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	return nil
}

func (p *Publisher) topicFor(subjectID string) string {
	return strings.Replace(p.topic, "+", subjectID, 1)
}

// validTopicSegment отсекает subject_id, который сломает топик
func validTopicSegment(s string) bool {
	return s != "" && !strings.ContainsAny(s, "/+#")
}
