package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/geo_monitoring_pipeline/internal/decoder"
	"github.com/shenikar/geo_monitoring_pipeline/internal/geofence"
	"github.com/shenikar/geo_monitoring_pipeline/internal/metrics"
	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
	"github.com/shenikar/geo_monitoring_pipeline/internal/sink"
)

// ZoneCache - кэш зон с перезагрузкой по TTL
type ZoneCache interface {
	EnsureFresh(ctx context.Context) error
	DisplayName(subjectID string) (string, bool)
	Len() int
	LastRefreshed() time.Time
}

// WindowAssigner раскладывает записи по окнам и отсекает поздние
type WindowAssigner interface {
	Assign(rec *models.LocationRecord) error
}

// Classifier вычисляет состояние риска
type Classifier interface {
	Classify(rec *models.LocationRecord) (geofence.Classification, error)
	Evaluate(subjectID string, lat, lon float64) (geofence.Classification, error)
}

// Notifier строит и отправляет уведомление
type Notifier interface {
	Build(rec *models.LocationRecord) *models.NotificationPayload
	Send(ctx context.Context, payload *models.NotificationPayload) error
}

// RecordSink - fan-out классифицированной записи
type RecordSink interface {
	Write(ctx context.Context, rec *models.LocationRecord, payload *models.NotificationPayload) sink.Result
}

// Deps - компоненты конвейера
type Deps struct {
	Cache      ZoneCache
	Assigner   WindowAssigner
	Classifier Classifier
	Notifier   Notifier
	Sink       RecordSink
	Logger     *logrus.Logger
}

// Processor проводит одну запись через все стадии: окно, кэш зон,
// классификация, fan-out, уведомление. Ошибки компонентов логируются здесь.
type Processor struct {
	deps Deps
	now  func() time.Time

	received       atomic.Uint64
	processed      atomic.Uint64
	decodeDropped  atomic.Uint64
	lateDropped    atomic.Uint64
	classifyDrops  atomic.Uint64
	queueDropped   atomic.Uint64
	cacheFailures  atomic.Uint64
	notifySent     atomic.Uint64
	notifyFailures atomic.Uint64
	byState        [3]atomic.Uint64
	sinkFailures   [3]atomic.Uint64
}

var branches = [3]string{sink.BranchAudit, sink.BranchSnapshot, sink.BranchOutbox}

func NewProcessor(deps Deps) *Processor {
	return &Processor{deps: deps, now: time.Now}
}

// Decode разбирает сырое сообщение. Ошибку логирует вызывающий.
func (p *Processor) Decode(payload []byte) (*models.LocationRecord, error) {
	p.received.Add(1)
	metrics.RecordsReceivedTotal.Inc()

	rec, err := decoder.Decode(payload, p.now())
	if err != nil {
		p.decodeDropped.Add(1)
		metrics.RecordsDroppedTotal.WithLabelValues(metrics.DropDecode).Inc()
		return nil, err
	}
	return rec, nil
}

// RecordDrop учитывает запись, отброшенную до обработки
func (p *Processor) RecordDrop(err error) {
	if errors.Is(err, models.ErrQueueFull) {
		p.queueDropped.Add(1)
		metrics.RecordsDroppedTotal.WithLabelValues(metrics.DropQueueFull).Inc()
	}
}

// HandleRaw - Decode и Process в текущей горутине
func (p *Processor) HandleRaw(ctx context.Context, payload []byte) error {
	rec, err := p.Decode(payload)
	if err != nil {
		p.deps.Logger.WithError(err).Warn("Dropping malformed location message")
		return err
	}
	return p.Process(ctx, rec)
}

// Process обрабатывает запись до конца. Ошибка означает, что запись отброшена
// (опоздала или некорректна); сбои синков и уведомлений ошибкой не считаются.
func (p *Processor) Process(ctx context.Context, rec *models.LocationRecord) error {
	start := time.Now()
	log := p.deps.Logger.WithFields(logrus.Fields{
		"service":    "pipeline",
		"subject_id": rec.SubjectID,
	})

	if err := p.deps.Assigner.Assign(rec); err != nil {
		p.lateDropped.Add(1)
		metrics.RecordsDroppedTotal.WithLabelValues(metrics.DropLate).Inc()
		log.WithError(err).WithField("observed_at", rec.ObservedAt).Info("Dropping late location record")
		return err
	}

	if err := p.deps.Cache.EnsureFresh(ctx); err != nil {
		p.cacheFailures.Add(1)
		log.WithError(err).WithField("zones_cached", p.deps.Cache.Len()).Warn("Zone cache refresh failed, using stale zones")
	}

	if rec.SubjectDisplay == "" {
		if name, ok := p.deps.Cache.DisplayName(rec.SubjectID); ok {
			rec.SubjectDisplay = name
		}
	}

	res, err := p.deps.Classifier.Classify(rec)
	if err != nil {
		p.classifyDrops.Add(1)
		metrics.RecordsDroppedTotal.WithLabelValues(metrics.DropClassification).Inc()
		log.WithError(err).WithFields(logrus.Fields{
			"latitude":  rec.Latitude,
			"longitude": rec.Longitude,
		}).Error("Dropping location record with invalid coordinates")
		return err
	}

	p.byState[res.State.Severity()].Add(1)
	metrics.RecordsClassifiedTotal.WithLabelValues(string(res.State)).Inc()
	log = log.WithField("risk_state", res.State)
	if res.Zone != nil {
		log = log.WithFields(logrus.Fields{
			"zone":            res.Zone.DisplayName,
			"distance_meters": res.DistanceMeters,
		})
	}

	payload := p.deps.Notifier.Build(rec)

	written := p.deps.Sink.Write(ctx, rec, payload)
	for i, branchErr := range []error{written.Audit, written.Snapshot, written.Outbox} {
		if branchErr != nil {
			p.sinkFailures[i].Add(1)
			log.WithError(branchErr).WithField("branch", branches[i]).Error("Sink write failed")
		}
	}

	if payload != nil {
		if err := p.deps.Notifier.Send(ctx, payload); err != nil {
			p.notifyFailures.Add(1)
			metrics.NotificationsTotal.WithLabelValues(string(payload.RecipientRole), "failure").Inc()
			log.WithError(err).WithField("recipient_role", payload.RecipientRole).Error("Failed to send notification")
		} else {
			p.notifySent.Add(1)
			metrics.NotificationsTotal.WithLabelValues(string(payload.RecipientRole), "success").Inc()
		}
	}

	if res.State == models.RiskOK {
		log.Debug("Location record processed")
	} else {
		log.Info("Location record processed")
	}

	p.processed.Add(1)
	metrics.RecordProcessingDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Check классифицирует точку без окна, синков и уведомлений
func (p *Processor) Check(ctx context.Context, subjectID string, lat, lon float64) (*models.CheckResult, error) {
	if err := p.deps.Cache.EnsureFresh(ctx); err != nil {
		p.cacheFailures.Add(1)
		p.deps.Logger.WithError(err).Warn("Zone cache refresh failed, using stale zones")
	}

	res, err := p.deps.Classifier.Evaluate(subjectID, lat, lon)
	if err != nil {
		return nil, err
	}

	out := &models.CheckResult{
		SubjectID:      subjectID,
		RiskState:      res.State,
		DistanceMeters: res.DistanceMeters,
		ZonesEvaluated: res.ZonesEvaluated,
	}
	if name, ok := p.deps.Cache.DisplayName(subjectID); ok {
		out.SubjectDisplay = name
	}
	if res.Zone != nil {
		out.ZoneName = res.Zone.DisplayName
	}
	return out, nil
}

// Stats возвращает счетчики с момента старта
func (p *Processor) Stats() models.PipelineStats {
	stats := models.PipelineStats{
		Received:              p.received.Load(),
		Processed:             p.processed.Load(),
		DecodeDropped:         p.decodeDropped.Load(),
		LateDropped:           p.lateDropped.Load(),
		ClassificationDropped: p.classifyDrops.Load(),
		QueueDropped:          p.queueDropped.Load(),
		ByState: map[models.RiskState]uint64{
			models.RiskOK:      p.byState[models.RiskOK.Severity()].Load(),
			models.RiskWarning: p.byState[models.RiskWarning.Severity()].Load(),
			models.RiskDanger:  p.byState[models.RiskDanger.Severity()].Load(),
		},
		SinkFailures:         make(map[string]uint64, len(branches)),
		NotificationsSent:    p.notifySent.Load(),
		NotificationFailures: p.notifyFailures.Load(),
		CacheRefreshFailures: p.cacheFailures.Load(),
		ZoneCount:            p.deps.Cache.Len(),
		ZoneCacheRefreshedAt: p.deps.Cache.LastRefreshed(),
	}
	for i, name := range branches {
		stats.SinkFailures[name] = p.sinkFailures[i].Load()
	}
	return stats
}
