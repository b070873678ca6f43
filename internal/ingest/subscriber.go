package ingest

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// maxLoggedPayload - сколько байт некорректного сообщения попадает в лог
const maxLoggedPayload = 512

// Pipeline - часть конвейера, нужная подписчику
type Pipeline interface {
	Decode(payload []byte) (*models.LocationRecord, error)
	RecordDrop(err error)
}

// Enqueuer - очередь воркеров
type Enqueuer interface {
	Enqueue(rec *models.LocationRecord) error
}

// Subscriber читает сообщения о местоположении из MQTT. Некорректное
// сообщение отбрасывается и не останавливает поток.
type Subscriber struct {
	topic    string
	pipeline Pipeline
	queue    Enqueuer
	logger   *logrus.Logger
}

func NewSubscriber(topic string, pipeline Pipeline, queue Enqueuer, logger *logrus.Logger) *Subscriber {
	return &Subscriber{
		topic:    topic,
		pipeline: pipeline,
		queue:    queue,
		logger:   logger,
	}
}

// Subscribe оформляет подписку с QoS 1. Передается как обработчик OnConnect,
// поэтому после переподключения подписка восстанавливается.
func (s *Subscriber) Subscribe(client mqtt.Client) error {
	token := client.Subscribe(s.topic, 1, s.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", s.topic, err)
	}
	s.logger.WithField("topic", s.topic).Info("Subscribed to location topic")
	return nil
}

// OnConnect - обработчик для pkg/mqtt; ошибку подписки только логирует
func (s *Subscriber) OnConnect(client mqtt.Client) {
	if err := s.Subscribe(client); err != nil {
		s.logger.WithError(err).Error("Failed to subscribe to location topic")
	}
}

func (s *Subscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	rec, err := s.pipeline.Decode(msg.Payload())
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"topic":   msg.Topic(),
			"payload": truncate(msg.Payload()),
		}).Warn("Dropping malformed location message")
		return
	}

	if err := s.queue.Enqueue(rec); err != nil {
		s.pipeline.RecordDrop(err)
		s.logger.WithError(err).WithField("subject_id", rec.SubjectID).Warn("Dropping location record")
	}
}

func truncate(payload []byte) string {
	if len(payload) > maxLoggedPayload {
		return string(payload[:maxLoggedPayload]) + "..."
	}
	return string(payload)
}
