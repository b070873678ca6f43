package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/geo_monitoring_pipeline/internal/config"
	"github.com/shenikar/geo_monitoring_pipeline/internal/metrics"
	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// popTimeout ограничивает BRPOP, чтобы цикл регулярно проверял отмену контекста
const popTimeout = 5 * time.Second

// Worker забирает уведомления из очереди и доставляет их во внешний webhook
type Worker struct {
	queue      Queue
	logger     *logrus.Logger
	cfg        *config.Config
	httpClient *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewWorker создает новый Worker
func NewWorker(queue Queue, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		queue:  queue,
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		sleep: sleepCtx,
	}
}

// Start запускает горутину обработки очереди; она завершается с отменой ctx
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	go w.run(ctx)
}

func (w *Worker) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			w.logger.Info("Stopping webhook worker.")
			return
		}

		// result[0] - ключ, result[1] - значение
		result, err := w.queue.BRPop(ctx, popTimeout, notificationQueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.logger.WithError(err).Error("Failed to pop notification from Redis")
			_ = w.sleep(ctx, w.cfg.WebhookTimeout)
			continue
		}
		if len(result) < 2 {
			continue
		}

		raw := result[1]
		var payload models.NotificationPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			w.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
			continue
		}

		w.process(ctx, &payload, raw)
	}
}

func (w *Worker) process(ctx context.Context, payload *models.NotificationPayload, raw string) {
	log := w.logger.WithFields(logrus.Fields{
		"subject_id":     payload.SubjectID,
		"risk_state":     payload.RiskState,
		"recipient_role": payload.RecipientRole,
	})

	if w.cfg.WebhookURL == "" {
		log.Debug("Webhook URL is not configured. Skipping webhook delivery.")
		metrics.WebhookDeliveriesTotal.WithLabelValues("skipped").Inc()
		return
	}

	if err := w.deliver(ctx, raw, log); err != nil {
		log.WithError(err).Error("Failed to deliver notification webhook")
		metrics.WebhookDeliveriesTotal.WithLabelValues("failure").Inc()
		return
	}
	log.Info("Webhook delivered successfully.")
	metrics.WebhookDeliveriesTotal.WithLabelValues("success").Inc()
}

// deliver отправляет тело с экспоненциальной задержкой между попытками
func (w *Worker) deliver(ctx context.Context, raw string, log *logrus.Entry) error {
	maxRetries := w.cfg.WebhookMaxRetries
	delay := w.cfg.WebhookBaseDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			log.WithError(lastErr).Warnf("Retrying webhook in %v. Retries left: %d", delay, maxRetries-i)
			if err := w.sleep(ctx, delay); err != nil {
				return err
			}
			delay *= 2
		}

		lastErr = w.post(ctx, raw)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxRetries, lastErr)
}

func (w *Worker) post(ctx context.Context, raw string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(raw))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(raw, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
