package v1

import "time"

// LocationCheckRequest DTO для синхронной проверки координат
// @Description DTO для синхронной проверки координат
type LocationCheckRequest struct {
	SubjectID string   `json:"subject_id" validate:"required,max=255"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// LocationCheckResponse DTO с результатом классификации
// @Description DTO с результатом классификации
type LocationCheckResponse struct {
	SubjectID      string  `json:"subject_id"`
	SubjectDisplay string  `json:"subject_display,omitempty"`
	RiskState      string  `json:"risk_state"`
	ZoneName       string  `json:"zone_name,omitempty"`
	DistanceMeters float64 `json:"distance_meters"`
	ZonesEvaluated int     `json:"zones_evaluated"`
}

// LocationReportRequest DTO для отправки отчета о местоположении в конвейер
// @Description DTO для отправки отчета о местоположении в конвейер
type LocationReportRequest struct {
	SubjectID  string     `json:"subject_id" validate:"required,max=255,excludesall=+#/"`
	Latitude   *float64   `json:"latitude" validate:"required,latitude"`
	Longitude  *float64   `json:"longitude" validate:"required,longitude"`
	ObservedAt *time.Time `json:"observed_at,omitempty"`
}

// SnapshotResponse DTO последнего известного положения
// @Description DTO последнего известного положения
type SnapshotResponse struct {
	SubjectID  string    `json:"subject_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RiskState  string    `json:"risk_state"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StatsResponse DTO для ответа со статистикой конвейера
// @Description DTO для ответа со статистикой конвейера
type StatsResponse struct {
	Received              uint64            `json:"received"`
	Processed             uint64            `json:"processed"`
	DecodeDropped         uint64            `json:"decode_dropped"`
	LateDropped           uint64            `json:"late_dropped"`
	ClassificationDropped uint64            `json:"classification_dropped"`
	QueueDropped          uint64            `json:"queue_dropped"`
	ByState               map[string]uint64 `json:"by_state"`
	SinkFailures          map[string]uint64 `json:"sink_failures"`
	NotificationsSent     uint64            `json:"notifications_sent"`
	NotificationFailures  uint64            `json:"notification_failures"`
	CacheRefreshFailures  uint64            `json:"cache_refresh_failures"`
	ZoneCount             int               `json:"zone_count"`
	ZoneCacheRefreshedAt  *time.Time        `json:"zone_cache_refreshed_at,omitempty"`
}

// HealthResponse DTO состояния сервиса и его зависимостей
// @Description DTO состояния сервиса и его зависимостей
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
