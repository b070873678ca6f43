package models

import "time"

// AuditEntry - строка append-only журнала классификаций
type AuditEntry struct {
	SubjectID      string
	SubjectDisplay string
	Latitude       float64
	Longitude      float64
	RiskState      RiskState
	OccurredAt     time.Time
}

// LiveSnapshot - последнее известное положение субъекта.
// Upsert перезаписывает только эти поля, остальные метаданные документа сохраняются.
type LiveSnapshot struct {
	SubjectID  string
	Latitude   float64
	Longitude  float64
	RiskState  RiskState
	OccurredAt time.Time
}

// OutboxNotification - документ уведомления для последующего чтения клиентами
type OutboxNotification struct {
	ID             string
	SubjectID      string
	SubjectDisplay string
	SubjectLine    string
	Body           string
	RecipientRole  RecipientRole
	OccurredAt     time.Time
	Read           bool
}

func NewAuditEntry(rec *LocationRecord) AuditEntry {
	return AuditEntry{
		SubjectID:      rec.SubjectID,
		SubjectDisplay: rec.SubjectDisplay,
		Latitude:       rec.Latitude,
		Longitude:      rec.Longitude,
		RiskState:      rec.RiskState,
		OccurredAt:     rec.OccurredAt,
	}
}

func NewLiveSnapshot(rec *LocationRecord) LiveSnapshot {
	return LiveSnapshot{
		SubjectID:  rec.SubjectID,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
		RiskState:  rec.RiskState,
		OccurredAt: rec.OccurredAt,
	}
}

// NewOutboxNotification строит непрочитанный документ из уведомления
func NewOutboxNotification(p *NotificationPayload) OutboxNotification {
	return OutboxNotification{
		ID:             p.ID,
		SubjectID:      p.SubjectID,
		SubjectDisplay: p.SubjectDisplay,
		SubjectLine:    p.SubjectLine,
		Body:           p.Body,
		RecipientRole:  p.RecipientRole,
		OccurredAt:     p.OccurredAt,
		Read:           false,
	}
}

// PipelineStats - счетчики конвейера с момента старта
type PipelineStats struct {
	Received              uint64
	Processed             uint64
	DecodeDropped         uint64
	LateDropped           uint64
	ClassificationDropped uint64
	QueueDropped          uint64
	ByState               map[RiskState]uint64
	SinkFailures          map[string]uint64
	NotificationsSent     uint64
	NotificationFailures  uint64
	CacheRefreshFailures  uint64
	ZoneCount             int
	ZoneCacheRefreshedAt  time.Time
}
