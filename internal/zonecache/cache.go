// Package zonecache хранит копию запрещенных зон в памяти и перезагружает ее по TTL.
package zonecache

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shenikar/geo_monitoring_pipeline/internal/metrics"
	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// ZoneSource - хранилище, из которого целиком читаются зоны всех субъектов
type ZoneSource interface {
	LoadZones(ctx context.Context) ([]models.RestrictedZone, error)
}

// snapshot неизменяем после публикации
type snapshot struct {
	bySubject   map[string][]models.RestrictedZone
	displays    map[string]string
	total       int
	refreshedAt time.Time
}

// Cache - набор зон, общий для всех воркеров. Читатели берут указатель на
// текущий snapshot, перезагрузка публикует новый snapshot одной операцией Store.
type Cache struct {
	source  ZoneSource
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	current atomic.Pointer[snapshot]
	group   singleflight.Group
}

// Option настраивает Cache
type Option func(*Cache)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New создает пустой кэш. Первая загрузка произойдет при первом EnsureFresh.
func New(source ZoneSource, ttl, timeout time.Duration, opts ...Option) *Cache {
	c := &Cache{
		source:  source,
		ttl:     ttl,
		timeout: timeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.current.Store(&snapshot{})
	return c
}

// Stale сообщает, нужна ли перезагрузка: кэш пуст или TTL истек
func (c *Cache) Stale() bool {
	s := c.current.Load()
	return s.total == 0 || c.now().Sub(s.refreshedAt) > c.ttl
}

// EnsureFresh перезагружает зоны, если кэш устарел. Ошибка имеет тип
// *models.CacheRefreshError; прежний snapshot при этом остается в силе.
func (c *Cache) EnsureFresh(ctx context.Context) error {
	if !c.Stale() {
		return nil
	}
	return c.Refresh(ctx)
}

// Refresh безусловно перечитывает зоны. Параллельные вызовы схлопываются в один
// запрос к хранилищу. Запрос ограничен таймаутом и не зависит от отмены ctx
// вызывающего: обработка записи не прерывается посередине.
func (c *Cache) Refresh(ctx context.Context) error {
	ch := c.group.DoChan("zones", func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		zones, err := c.source.LoadZones(loadCtx)
		if err != nil {
			metrics.ZoneCacheRefreshTotal.WithLabelValues("failure").Inc()
			return nil, &models.CacheRefreshError{Err: err}
		}

		next := build(zones, c.now())
		c.current.Store(next)
		metrics.ZoneCacheRefreshTotal.WithLabelValues("success").Inc()
		metrics.ZoneCacheZones.Set(float64(next.total))
		return nil, nil
	})

	res := <-ch
	return res.Err
}

// Zones возвращает зоны субъекта в порядке хранилища; nil, если субъект неизвестен.
// Срез общий для всех читателей и не должен изменяться.
func (c *Cache) Zones(subjectID string) []models.RestrictedZone {
	return c.current.Load().bySubject[subjectID]
}

// DisplayName возвращает отображаемое имя субъекта из последней загрузки
func (c *Cache) DisplayName(subjectID string) (string, bool) {
	name, ok := c.current.Load().displays[subjectID]
	return name, ok
}

// LastRefreshed - время последней успешной загрузки; нулевое, если ее не было
func (c *Cache) LastRefreshed() time.Time {
	return c.current.Load().refreshedAt
}

// Len - общее количество зон в snapshot
func (c *Cache) Len() int {
	return c.current.Load().total
}

func build(zones []models.RestrictedZone, at time.Time) *snapshot {
	s := &snapshot{
		bySubject:   make(map[string][]models.RestrictedZone),
		displays:    make(map[string]string),
		total:       len(zones),
		refreshedAt: at,
	}
	for _, z := range zones {
		s.bySubject[z.SubjectID] = append(s.bySubject[z.SubjectID], z)
		if z.SubjectDisplay != "" {
			s.displays[z.SubjectID] = z.SubjectDisplay
		}
	}
	return s
}
