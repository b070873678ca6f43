// Package ingest принимает сообщения из MQTT и раздает записи воркерам.
package ingest

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/geo_monitoring_pipeline/internal/metrics"
	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

const (
	defaultWorkers   = 8
	defaultQueueSize = 256
)

// RecordHandler обрабатывает одну запись до конца
type RecordHandler interface {
	Process(ctx context.Context, rec *models.LocationRecord) error
}

// Dispatcher направляет записи в фиксированный набор воркеров по хешу subject_id.
// Записи одного субъекта обрабатываются одним воркером в порядке поступления.
type Dispatcher struct {
	workers []chan *models.LocationRecord
	handler RecordHandler
	logger  *logrus.Logger
}

// NewDispatcher создает numWorkers воркеров с очередью queueSize каждый.
// Неположительные значения заменяются значениями по умолчанию.
func NewDispatcher(numWorkers, queueSize int, handler RecordHandler, logger *logrus.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &Dispatcher{
		workers: make([]chan *models.LocationRecord, numWorkers),
		handler: handler,
		logger:  logger,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *models.LocationRecord, queueSize)
	}
	return d
}

// Enqueue не блокируется: если очередь воркера заполнена, возвращает models.ErrQueueFull
func (d *Dispatcher) Enqueue(rec *models.LocationRecord) error {
	idx := d.shardIndex(rec.SubjectID)
	select {
	case d.workers[idx] <- rec:
		metrics.IngestQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		return models.ErrQueueFull
	}
}

// Run запускает воркеры и блокируется до отмены ctx.
// Запись, взятая воркером, обрабатывается до конца.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, ch := range d.workers {
		g.Go(func() error {
			d.runWorker(ctx, i, ch)
			return nil
		})
	}
	return g.Wait()
}

// Pending - суммарное количество записей в очередях
func (d *Dispatcher) Pending() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

// shardIndex детерминированно отображает subject_id на индекс воркера
func (d *Dispatcher) shardIndex(subjectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *models.LocationRecord) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-ch:
			metrics.IngestQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.handler.Process(ctx, rec); err != nil {
				d.logger.WithError(err).WithFields(logrus.Fields{
					"subject_id": rec.SubjectID,
					"worker_id":  id,
				}).Debug("Record dropped by worker")
			}
		}
	}
}
