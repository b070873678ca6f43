// Package metrics объявляет и регистрирует Prometheus-метрики конвейера.
// Все метрики регистрируются в default registry через promauto при импорте пакета.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "geo_monitoring"

// Причины отброса записи
const (
	DropDecode         = "decode"
	DropLate           = "late"
	DropClassification = "classification"
	DropQueueFull      = "queue_full"
)

// RecordsReceivedTotal - все сообщения, пришедшие из транспорта
var RecordsReceivedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_received_total",
		Help:      "Total number of raw location messages received.",
	},
)

// RecordsDroppedTotal - отброшенные записи.
// Label:
//   - reason: decode, late, classification, queue_full
var RecordsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_dropped_total",
		Help:      "Total number of location records dropped, by reason.",
	},
	[]string{"reason"},
)

// RecordsClassifiedTotal - классифицированные записи по состоянию риска
var RecordsClassifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_classified_total",
		Help:      "Total number of classified location records, by risk state.",
	},
	[]string{"state"},
)

// ZoneCacheRefreshTotal - попытки полной перезагрузки кэша зон.
// Label:
//   - result: success, failure
var ZoneCacheRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "zone_cache_refresh_total",
		Help:      "Total number of zone cache reload attempts, by result.",
	},
	[]string{"result"},
)

// ZoneCacheZones - количество зон в текущем снимке
var ZoneCacheZones = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "zone_cache_zones",
		Help:      "Number of restricted zones held by the current cache snapshot.",
	},
)

// SinkWritesTotal - записи в ветки fan-out.
// Labels:
//   - branch: audit, live_snapshot, notification_outbox
//   - result: success, failure
var SinkWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sink_writes_total",
		Help:      "Total number of sink branch writes, by branch and result.",
	},
	[]string{"branch", "result"},
)

// NotificationsTotal - отправленные уведомления по роли получателя
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of dispatched notifications, by recipient role and result.",
	},
	[]string{"role", "result"},
)

// RecordProcessingDuration - время от декодирования до завершения fan-out
var RecordProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "record_processing_duration_seconds",
		Help:      "Duration of processing a single location record.",
		Buckets:   prometheus.DefBuckets,
	},
)

// IngestQueueDepth - записи, ожидающие в канале каждого воркера
var IngestQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ingest_queue_depth",
		Help:      "Current number of records pending in each ingest worker channel.",
	},
	[]string{"worker_id"},
)

// WebhookDeliveriesTotal - доставка уведомлений во внешний webhook
var WebhookDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "Total number of webhook delivery outcomes.",
	},
	[]string{"result"},
)
