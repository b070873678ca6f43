package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
	"github.com/shenikar/geo_monitoring_pipeline/internal/service"
)

// Pinger проверяет доступность одной зависимости
type Pinger func(ctx context.Context) error

type Handler struct {
	monitoringService service.MonitoringService
	logger            *logrus.Logger
	validate          *validator.Validate
	dependencies      map[string]Pinger
	healthTimeout     time.Duration
	// насколько observed_at отчета может опережать часы сервера
	maxClockSkew time.Duration
	now          func() time.Time
}

func NewHandler(monitoringService service.MonitoringService, logger *logrus.Logger, dependencies map[string]Pinger, maxClockSkew time.Duration) *Handler {
	return &Handler{
		monitoringService: monitoringService,
		logger:            logger,
		validate:          validator.New(),
		dependencies:      dependencies,
		healthTimeout:     3 * time.Second,
		maxClockSkew:      maxClockSkew,
		now:               time.Now,
	}
}

// @Summary Check location against restricted zones
// @Description Classify a point for a subject without writing it anywhere
// @Tags Location
// @Accept json
// @Produce json
// @Param location body LocationCheckRequest true "Location check request"
// @Success 200 {object} LocationCheckResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/check [post]
func (h *Handler) checkLocation(c *gin.Context) {
	var input LocationCheckRequest
	log := h.logger.WithField("method", "checkLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.monitoringService.CheckLocation(c.Request.Context(), input.SubjectID, *input.Latitude, *input.Longitude)
	if err != nil {
		var classErr *models.ClassificationError
		if errors.As(err, &classErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": classErr.Error()})
			return
		}
		log.WithError(err).Error("Failed to check location in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToCheckResponse(result))
}

// @Summary Submit a location report
// @Description Publish a location report to the ingest topic. The report is processed asynchronously.
// @Tags Location
// @Accept json
// @Produce json
// @Param location body LocationReportRequest true "Location report"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid request body, validation error or observed_at in the future"
// @Failure 503 {object} map[string]string "Broker unavailable"
// @Router /locations [post]
func (h *Handler) submitLocation(c *gin.Context) {
	var input LocationReportRequest
	log := h.logger.WithField("method", "submitLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := h.now().UTC()
	observedAt := now
	if input.ObservedAt != nil {
		observedAt = input.ObservedAt.UTC()
		if observedAt.After(now.Add(h.maxClockSkew)) {
			log.WithField("observed_at", observedAt).Warn("Rejected location report from the future")
			c.JSON(http.StatusBadRequest, gin.H{"error": "observed_at is in the future"})
			return
		}
	}

	if err := h.monitoringService.SubmitLocation(c.Request.Context(), input.SubjectID, *input.Latitude, *input.Longitude, observedAt); err != nil {
		log.WithError(err).Error("Failed to submit location")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "location broker unavailable"})
		return
	}

	c.Status(http.StatusAccepted)
}

// @Summary Get live snapshot
// @Description Get the last known location and risk state of a subject
// @Tags Location
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} SnapshotResponse
// @Failure 404 {object} map[string]string "Snapshot not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subjects/{id}/snapshot [get]
func (h *Handler) getSnapshot(c *gin.Context) {
	subjectID := c.Param("id")
	log := h.logger.WithField("method", "getSnapshot").WithField("subject_id", subjectID)

	snapshot, err := h.monitoringService.GetSnapshot(c.Request.Context(), subjectID)
	if err != nil {
		log.WithError(err).Error("Failed to get snapshot from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
		return
	}

	c.JSON(http.StatusOK, ModelToSnapshotResponse(snapshot))
}

// @Summary Get pipeline statistics
// @Description Get processing counters since process start
// @Tags Admin
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /pipeline/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, ModelToStatsResponse(h.monitoringService.Stats()))
}

// @Summary Get application health status
// @Description Get health status of the application and its dependencies
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.healthTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Dependencies: make(map[string]string, len(h.dependencies))}
	status := http.StatusOK

	for name, ping := range h.dependencies {
		if err := ping(ctx); err != nil {
			h.logger.WithError(err).WithField("dependency", name).Warn("Health check failed")
			resp.Dependencies[name] = "unhealthy"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = "ok"
	}

	c.JSON(status, resp)
}
