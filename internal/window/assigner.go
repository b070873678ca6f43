// Package window раскладывает записи по фиксированным временным окнам.
package window

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// Assigner назначает окно по observed_at записи. Буферизации нет: запись
// уходит дальше сразу, порядок прихода сохраняется.
//
// Поздние данные оцениваются по watermark - максимальному observed_at среди уже
// принятых записей. Watermark только растет и обновляется через CAS, общей
// блокировки между записями нет. Вперед он не уходит дальше now + maxSkew:
// запись с часами устройства из будущего попадает в свое окно, но не делает
// поздними записи остальных субъектов.
type Assigner struct {
	duration  time.Duration
	lateness  time.Duration
	maxSkew   time.Duration
	now       func() time.Time
	watermark atomic.Int64 // unix nanos
}

// DefaultMaxSkew - допустимое опережение observed_at относительно часов процесса
const DefaultMaxSkew = time.Minute

type Option func(*Assigner)

func WithClock(now func() time.Time) Option {
	return func(a *Assigner) { a.now = now }
}

func WithMaxSkew(d time.Duration) Option {
	return func(a *Assigner) {
		if d > 0 {
			a.maxSkew = d
		}
	}
}

func NewAssigner(duration, lateness time.Duration, opts ...Option) *Assigner {
	a := &Assigner{
		duration: duration,
		lateness: lateness,
		maxSkew:  DefaultMaxSkew,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.watermark.Store(math.MinInt64)
	return a
}

// Assign проставляет WindowStart/WindowEnd. Если watermark уже ушел дальше
// конца окна плюс допустимое опоздание, возвращает models.ErrLateRecord.
func (a *Assigner) Assign(rec *models.LocationRecord) error {
	ts := rec.ObservedAt.UnixNano()
	start := floorTo(ts, int64(a.duration))
	end := start + int64(a.duration)

	if wm := a.watermark.Load(); wm != math.MinInt64 && wm > end+int64(a.lateness) {
		return models.ErrLateRecord
	}

	a.advance(min(ts, a.now().Add(a.maxSkew).UnixNano()))
	rec.WindowStart = time.Unix(0, start).UTC()
	rec.WindowEnd = time.Unix(0, end).UTC()
	return nil
}

// Watermark возвращает текущую отметку; нулевое время, если записей еще не было
func (a *Assigner) Watermark() time.Time {
	wm := a.watermark.Load()
	if wm == math.MinInt64 {
		return time.Time{}
	}
	return time.Unix(0, wm).UTC()
}

func (a *Assigner) advance(ts int64) {
	for {
		cur := a.watermark.Load()
		if ts <= cur {
			return
		}
		if a.watermark.CompareAndSwap(cur, ts) {
			return
		}
	}
}

// floorTo округляет вниз и для отрицательных значений
func floorTo(ts, step int64) int64 {
	r := ts % step
	if r < 0 {
		r += step
	}
	return ts - r
}
