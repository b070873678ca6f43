// Package sink пишет классифицированную запись в три независимые ветки.
package sink

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/geo_monitoring_pipeline/internal/metrics"
	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// Имена веток fan-out, используются в ошибках, логах и метриках
const (
	BranchAudit    = "audit"
	BranchSnapshot = "live_snapshot"
	BranchOutbox   = "notification_outbox"
)

// AuditWriter - append-only журнал; одна транзакция на запись
type AuditWriter interface {
	AppendAudit(ctx context.Context, entry models.AuditEntry) error
}

// SnapshotWriter - merge-upsert последнего положения субъекта
type SnapshotWriter interface {
	UpsertSnapshot(ctx context.Context, snapshot models.LiveSnapshot) error
}

// OutboxWriter - документы уведомлений с флагом read=false
type OutboxWriter interface {
	InsertNotification(ctx context.Context, n models.OutboxNotification) error
}

// Result - итог по каждой ветке. Ошибки имеют тип *models.SinkWriteError.
type Result struct {
	Audit         error
	Snapshot      error
	Outbox        error
	OutboxSkipped bool
}

// Err объединяет ошибки всех веток; nil, если все записи прошли
func (r Result) Err() error {
	return errors.Join(r.Audit, r.Snapshot, r.Outbox)
}

// Failed возвращает имена упавших веток
func (r Result) Failed() []string {
	var failed []string
	if r.Audit != nil {
		failed = append(failed, BranchAudit)
	}
	if r.Snapshot != nil {
		failed = append(failed, BranchSnapshot)
	}
	if r.Outbox != nil {
		failed = append(failed, BranchOutbox)
	}
	return failed
}

// Fanout запускает ветки параллельно. Общего сигнала отмены у веток нет:
// каждая получает свой таймаут и завершается независимо от соседних.
type Fanout struct {
	audit    AuditWriter
	snapshot SnapshotWriter
	outbox   OutboxWriter
	timeout  time.Duration
}

func NewFanout(audit AuditWriter, snapshot SnapshotWriter, outbox OutboxWriter, timeout time.Duration) *Fanout {
	return &Fanout{
		audit:    audit,
		snapshot: snapshot,
		outbox:   outbox,
		timeout:  timeout,
	}
}

// Write пишет запись во все ветки и ждет их завершения. Outbox пишется только
// для состояния, отличного от OK, и при наличии уведомления.
func (f *Fanout) Write(ctx context.Context, rec *models.LocationRecord, payload *models.NotificationPayload) Result {
	// запись не прерывается на середине, даже если вызывающий уже отменен
	ctx = context.WithoutCancel(ctx)

	var (
		res Result
		wg  sync.WaitGroup
	)

	audit := models.NewAuditEntry(rec)
	snapshot := models.NewLiveSnapshot(rec)

	wg.Add(2)
	go func() {
		defer wg.Done()
		res.Audit = f.run(ctx, BranchAudit, func(ctx context.Context) error {
			return f.audit.AppendAudit(ctx, audit)
		})
	}()
	go func() {
		defer wg.Done()
		res.Snapshot = f.run(ctx, BranchSnapshot, func(ctx context.Context) error {
			return f.snapshot.UpsertSnapshot(ctx, snapshot)
		})
	}()

	if rec.RiskState != models.RiskOK && payload != nil {
		outbox := models.NewOutboxNotification(payload)
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.Outbox = f.run(ctx, BranchOutbox, func(ctx context.Context) error {
				return f.outbox.InsertNotification(ctx, outbox)
			})
		}()
	} else {
		res.OutboxSkipped = true
	}

	wg.Wait()
	return res
}

// run выполняет одну ветку с собственным таймаутом; паника ветки превращается в ошибку
func (f *Fanout) run(ctx context.Context, branch string, write func(ctx context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			err = &models.SinkWriteError{Branch: branch, Err: err}
			metrics.SinkWritesTotal.WithLabelValues(branch, "failure").Inc()
			return
		}
		metrics.SinkWritesTotal.WithLabelValues(branch, "success").Inc()
	}()

	return write(ctx)
}
