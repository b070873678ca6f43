package v1

import "github.com/shenikar/geo_monitoring_pipeline/internal/models"

// ModelToCheckResponse преобразует результат проверки в DTO для ответа
func ModelToCheckResponse(model *models.CheckResult) *LocationCheckResponse {
	return &LocationCheckResponse{
		SubjectID:      model.SubjectID,
		SubjectDisplay: model.SubjectDisplay,
		RiskState:      string(model.RiskState),
		ZoneName:       model.ZoneName,
		DistanceMeters: model.DistanceMeters,
		ZonesEvaluated: model.ZonesEvaluated,
	}
}

func ModelToSnapshotResponse(model *models.LiveSnapshot) *SnapshotResponse {
	return &SnapshotResponse{
		SubjectID:  model.SubjectID,
		Latitude:   model.Latitude,
		Longitude:  model.Longitude,
		RiskState:  string(model.RiskState),
		OccurredAt: model.OccurredAt,
	}
}

// ModelToStatsResponse преобразует счетчики конвейера; ключи состояний - строки
func ModelToStatsResponse(stats models.PipelineStats) *StatsResponse {
	resp := &StatsResponse{
		Received:              stats.Received,
		Processed:             stats.Processed,
		DecodeDropped:         stats.DecodeDropped,
		LateDropped:           stats.LateDropped,
		ClassificationDropped: stats.ClassificationDropped,
		QueueDropped:          stats.QueueDropped,
		ByState:               make(map[string]uint64, len(stats.ByState)),
		SinkFailures:          stats.SinkFailures,
		NotificationsSent:     stats.NotificationsSent,
		NotificationFailures:  stats.NotificationFailures,
		CacheRefreshFailures:  stats.CacheRefreshFailures,
		ZoneCount:             stats.ZoneCount,
	}
	for state, n := range stats.ByState {
		resp.ByState[string(state)] = n
	}
	if !stats.ZoneCacheRefreshedAt.IsZero() {
		at := stats.ZoneCacheRefreshedAt
		resp.ZoneCacheRefreshedAt = &at
	}
	return resp
}
