package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
	"github.com/shenikar/geo_monitoring_pipeline/internal/service/mocks"
)

// newTestHandler создает Handler с мокированным сервисом и заданными проверками зависимостей
func newTestHandler(t *testing.T, dependencies map[string]Pinger) (*mocks.MockMonitoringService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockMonitoringService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	handler := NewHandler(mockService, logger, dependencies, time.Minute)
	handler.now = func() time.Time { return testNow }

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterSystemRoutes(router)
	handler.RegisterRoutes(router.Group("/api/v1"))

	return mockService, router
}

// часы сервера в тестах
var testNow = time.Date(2026, 10, 19, 12, 0, 30, 0, time.UTC)

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckLocation_Success(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().
		CheckLocation(gomock.Any(), "X", 39.4699, -0.3763).
		Return(&models.CheckResult{
			SubjectID:      "X",
			SubjectDisplay: "Lucia",
			RiskState:      models.RiskDanger,
			ZoneName:       "Centro",
			ZonesEvaluated: 1,
		}, nil).Times(1)

	body := `{"subject_id":"X","latitude":39.4699,"longitude":-0.3763}`
	w := makeRequest(router, http.MethodPost, "/api/v1/location/check", bytes.NewBufferString(body))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp LocationCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DANGER", resp.RiskState)
	assert.Equal(t, "Centro", resp.ZoneName)
	assert.Equal(t, "Lucia", resp.SubjectDisplay)
}

func TestCheckLocation_ZeroCoordinatesAccepted(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().
		CheckLocation(gomock.Any(), "X", 0.0, 0.0).
		Return(&models.CheckResult{SubjectID: "X", RiskState: models.RiskOK}, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/location/check", bytes.NewBufferString(`{"subject_id":"X","latitude":0,"longitude":0}`))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckLocation_InvalidJSON(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().CheckLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, http.MethodPost, "/api/v1/location/check", bytes.NewBufferString(`{"subject_id": "X"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCheckLocation_ValidationError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing subject", `{"latitude":1,"longitude":1}`, "'SubjectID' failed on the 'required' tag"},
		{"missing latitude", `{"subject_id":"X","longitude":1}`, "'Latitude' failed on the 'required' tag"},
		{"latitude out of range", `{"subject_id":"X","latitude":91,"longitude":1}`, "'Latitude' failed on the 'latitude' tag"},
		{"longitude out of range", `{"subject_id":"X","latitude":1,"longitude":-181}`, "'Longitude' failed on the 'longitude' tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newTestHandler(t, nil)
			mockService.EXPECT().CheckLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, http.MethodPost, "/api/v1/location/check", bytes.NewBufferString(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestCheckLocation_ClassificationError(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().
		CheckLocation(gomock.Any(), "X", 1.0, 1.0).
		Return(nil, &models.ClassificationError{SubjectID: "X", Reason: "coordinates are not finite"})

	w := makeRequest(router, http.MethodPost, "/api/v1/location/check", bytes.NewBufferString(`{"subject_id":"X","latitude":1,"longitude":1}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "coordinates are not finite")
}

func TestCheckLocation_ServiceError(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().
		CheckLocation(gomock.Any(), "X", 1.0, 1.0).
		Return(nil, errors.New("unexpected"))

	w := makeRequest(router, http.MethodPost, "/api/v1/location/check", bytes.NewBufferString(`{"subject_id":"X","latitude":1,"longitude":1}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestSubmitLocation_Accepted(t *testing.T) {
	mockService, router := newTestHandler(t, nil)
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	mockService.EXPECT().
		SubmitLocation(gomock.Any(), "X", 39.4699, -0.3763, at).
		Return(nil).Times(1)

	body := `{"subject_id":"X","latitude":39.4699,"longitude":-0.3763,"observed_at":"2026-10-19T14:00:00+02:00"}`
	w := makeRequest(router, http.MethodPost, "/api/v1/locations", bytes.NewBufferString(body))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestSubmitLocation_DefaultsObservedAt(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().
		SubmitLocation(gomock.Any(), "X", 1.0, 2.0, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _, _ float64, observedAt time.Time) error {
			assert.True(t, observedAt.Equal(testNow))
			assert.Equal(t, time.UTC, observedAt.Location())
			return nil
		})

	w := makeRequest(router, http.MethodPost, "/api/v1/locations", bytes.NewBufferString(`{"subject_id":"X","latitude":1,"longitude":2}`))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestSubmitLocation_ObservedAtInFuture(t *testing.T) {
	tests := []struct {
		name       string
		observedAt time.Time
		wantCode   int
	}{
		{"a day ahead", testNow.Add(24 * time.Hour), http.StatusBadRequest},
		{"just beyond skew", testNow.Add(time.Minute + time.Second), http.StatusBadRequest},
		{"within skew", testNow.Add(30 * time.Second), http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newTestHandler(t, nil)
			if tt.wantCode == http.StatusAccepted {
				mockService.EXPECT().SubmitLocation(gomock.Any(), "X", 1.0, 2.0, tt.observedAt).Return(nil)
			} else {
				mockService.EXPECT().SubmitLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			}

			body := `{"subject_id":"X","latitude":1,"longitude":2,"observed_at":"` + tt.observedAt.Format(time.RFC3339) + `"}`
			w := makeRequest(router, http.MethodPost, "/api/v1/locations", bytes.NewBufferString(body))

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), "observed_at is in the future")
			}
		})
	}
}

func TestSubmitLocation_RejectsTopicWildcards(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().SubmitLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/v1/locations", bytes.NewBufferString(`{"subject_id":"a/#","latitude":1,"longitude":2}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "excludesall")
}

func TestSubmitLocation_BrokerUnavailable(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().
		SubmitLocation(gomock.Any(), "X", 1.0, 2.0, gomock.Any()).
		Return(errors.New("mqtt client is not connected"))

	w := makeRequest(router, http.MethodPost, "/api/v1/locations", bytes.NewBufferString(`{"subject_id":"X","latitude":1,"longitude":2}`))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetSnapshot(t *testing.T) {
	mockService, router := newTestHandler(t, nil)
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	mockService.EXPECT().
		GetSnapshot(gomock.Any(), "X").
		Return(&models.LiveSnapshot{SubjectID: "X", Latitude: 1, Longitude: 2, RiskState: models.RiskWarning, OccurredAt: at}, nil)
	mockService.EXPECT().GetSnapshot(gomock.Any(), "Y").Return(nil, nil)
	mockService.EXPECT().GetSnapshot(gomock.Any(), "Z").Return(nil, errors.New("mongo down"))

	w := makeRequest(router, http.MethodGet, "/api/v1/subjects/X/snapshot", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WARNING", resp.RiskState)
	assert.True(t, at.Equal(resp.OccurredAt))

	w = makeRequest(router, http.MethodGet, "/api/v1/subjects/Y/snapshot", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/v1/subjects/Z/snapshot", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetStats(t *testing.T) {
	mockService, router := newTestHandler(t, nil)

	mockService.EXPECT().Stats().Return(models.PipelineStats{
		Received:     10,
		Processed:    8,
		LateDropped:  2,
		ByState:      map[models.RiskState]uint64{models.RiskOK: 5, models.RiskWarning: 2, models.RiskDanger: 1},
		SinkFailures: map[string]uint64{"audit": 1},
		ZoneCount:    3,
	})

	w := makeRequest(router, http.MethodGet, "/api/v1/pipeline/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(10), resp.Received)
	assert.Equal(t, uint64(1), resp.ByState["DANGER"])
	assert.Equal(t, uint64(1), resp.SinkFailures["audit"])
	assert.Nil(t, resp.ZoneCacheRefreshedAt)
}

func TestHealthCheck(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		_, router := newTestHandler(t, map[string]Pinger{
			"postgres": func(ctx context.Context) error { return nil },
			"mongodb":  func(ctx context.Context) error { return nil },
		})

		w := makeRequest(router, http.MethodGet, "/system/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Dependencies["postgres"])
	})

	t.Run("dependency down", func(t *testing.T) {
		_, router := newTestHandler(t, map[string]Pinger{
			"postgres": func(ctx context.Context) error { return nil },
			"mqtt":     func(ctx context.Context) error { return errors.New("not connected") },
		})

		w := makeRequest(router, http.MethodGet, "/system/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unhealthy", resp.Dependencies["mqtt"])
		assert.Equal(t, "ok", resp.Dependencies["postgres"])
	})
}
