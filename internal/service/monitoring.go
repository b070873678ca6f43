package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// LocationPublisher отправляет отчет о местоположении во входной топик конвейера
type LocationPublisher interface {
	PublishLocation(ctx context.Context, subjectID string, lat, lon float64, observedAt time.Time) error
}

// SnapshotReader читает последнее положение субъекта
type SnapshotReader interface {
	GetSnapshot(ctx context.Context, subjectID string) (*models.LiveSnapshot, error)
}

// MonitoringService определяет контракт HTTP-слоя к конвейеру
type MonitoringService interface {
	CheckLocation(ctx context.Context, subjectID string, lat, lon float64) (*models.CheckResult, error)
	SubmitLocation(ctx context.Context, subjectID string, lat, lon float64, observedAt time.Time) error
	GetSnapshot(ctx context.Context, subjectID string) (*models.LiveSnapshot, error)
	Stats() models.PipelineStats
}

type monitoringService struct {
	processor *Processor
	publisher LocationPublisher
	snapshots SnapshotReader
	logger    *logrus.Logger
}

func NewMonitoringService(processor *Processor, publisher LocationPublisher, snapshots SnapshotReader, logger *logrus.Logger) MonitoringService {
	return &monitoringService{
		processor: processor,
		publisher: publisher,
		snapshots: snapshots,
		logger:    logger,
	}
}

// CheckLocation классифицирует точку без побочных эффектов
func (s *monitoringService) CheckLocation(ctx context.Context, subjectID string, lat, lon float64) (*models.CheckResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "monitoring",
		"method":     "CheckLocation",
		"subject_id": subjectID,
	})

	result, err := s.processor.Check(ctx, subjectID, lat, lon)
	if err != nil {
		log.WithError(err).Warn("Location check rejected")
		return nil, err
	}

	log.WithField("risk_state", result.RiskState).Debug("Location checked")
	return result, nil
}

// SubmitLocation публикует отчет в MQTT; дальше он проходит обычный путь конвейера
func (s *monitoringService) SubmitLocation(ctx context.Context, subjectID string, lat, lon float64, observedAt time.Time) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "monitoring",
		"method":     "SubmitLocation",
		"subject_id": subjectID,
	})

	if err := s.publisher.PublishLocation(ctx, subjectID, lat, lon, observedAt); err != nil {
		log.WithError(err).Error("Failed to publish location report")
		return fmt.Errorf("service: could not submit location: %w", err)
	}

	log.Debug("Location report published")
	return nil
}

// GetSnapshot возвращает последнее записанное положение; nil, если его нет
func (s *monitoringService) GetSnapshot(ctx context.Context, subjectID string) (*models.LiveSnapshot, error) {
	snap, err := s.snapshots.GetSnapshot(ctx, subjectID)
	if err != nil {
		s.logger.WithError(err).WithField("subject_id", subjectID).Error("Failed to read live snapshot")
		return nil, fmt.Errorf("service: could not get snapshot: %w", err)
	}
	return snap, nil
}

func (s *monitoringService) Stats() models.PipelineStats {
	return s.processor.Stats()
}
