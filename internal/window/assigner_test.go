package window

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

var base = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// часы процесса в тестах стоят на base + 5m
func testNow() time.Time { return base.Add(5 * time.Minute) }

func record(offset time.Duration) *models.LocationRecord {
	return &models.LocationRecord{SubjectID: "X", ObservedAt: base.Add(offset)}
}

func TestAssign_FixedWindows(t *testing.T) {
	a := NewAssigner(10*time.Second, 5*time.Second, WithClock(testNow))

	tests := []struct {
		offset time.Duration
		start  time.Duration
	}{
		{0, 0},
		{9*time.Second + 999*time.Millisecond, 0},
		{10 * time.Second, 10 * time.Second},
		{27 * time.Second, 20 * time.Second},
	}

	for _, tt := range tests {
		rec := record(tt.offset)
		require.NoError(t, a.Assign(rec))
		assert.True(t, rec.WindowStart.Equal(base.Add(tt.start)), "offset %v: start %v", tt.offset, rec.WindowStart)
		assert.Equal(t, 10*time.Second, rec.WindowEnd.Sub(rec.WindowStart))
	}
}

func TestAssign_LateRecordWithinAllowance(t *testing.T) {
	a := NewAssigner(10*time.Second, 5*time.Second, WithClock(testNow))

	// watermark ровно на границе: конец окна [0,10) + 5s
	require.NoError(t, a.Assign(record(15*time.Second)))

	late := record(9 * time.Second)
	err := a.Assign(late)

	require.NoError(t, err)
	assert.True(t, late.WindowStart.Equal(base), "late record lands in the window of its event time")
	assert.True(t, late.WindowEnd.Equal(base.Add(10*time.Second)))
}

func TestAssign_LateRecordBeyondAllowanceIsDropped(t *testing.T) {
	a := NewAssigner(10*time.Second, 5*time.Second, WithClock(testNow))

	require.NoError(t, a.Assign(record(16*time.Second)))

	late := record(9 * time.Second)
	err := a.Assign(late)

	assert.ErrorIs(t, err, models.ErrLateRecord)
	assert.True(t, late.WindowStart.IsZero())
}

func TestAssign_LateRecordDoesNotMoveWatermarkBack(t *testing.T) {
	a := NewAssigner(10*time.Second, 5*time.Second, WithClock(testNow))

	require.NoError(t, a.Assign(record(12*time.Second)))
	require.NoError(t, a.Assign(record(3*time.Second)))

	assert.True(t, a.Watermark().Equal(base.Add(12*time.Second)))
}

func TestAssign_ZeroLateness(t *testing.T) {
	a := NewAssigner(10*time.Second, 0, WithClock(testNow))

	require.NoError(t, a.Assign(record(10*time.Second)))
	assert.NoError(t, a.Assign(record(5*time.Second)), "watermark equal to window end is not late")

	require.NoError(t, a.Assign(record(11*time.Second)))
	assert.ErrorIs(t, a.Assign(record(5*time.Second)), models.ErrLateRecord)
}

func TestWatermark_EmptyAssigner(t *testing.T) {
	a := NewAssigner(10*time.Second, 5*time.Second, WithClock(testNow))
	assert.True(t, a.Watermark().IsZero())
}

func TestAssign_ConcurrentWatermarkIsMax(t *testing.T) {
	a := NewAssigner(10*time.Second, time.Hour, WithClock(testNow))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = a.Assign(record(time.Duration(i) * time.Second))
		}(i)
	}
	wg.Wait()

	assert.True(t, a.Watermark().Equal(base.Add(99*time.Second)))
}

func TestFloorTo_Negative(t *testing.T) {
	assert.Equal(t, int64(-10), floorTo(-1, 10))
	assert.Equal(t, int64(0), floorTo(0, 10))
	assert.Equal(t, int64(10), floorTo(19, 10))
}

func TestAssign_FutureRecordDoesNotPoisonWatermark(t *testing.T) {
	a := NewAssigner(10*time.Second, 5*time.Second, WithClock(testNow))
	now := testNow()

	future := &models.LocationRecord{SubjectID: "Y", ObservedAt: now.Add(24 * time.Hour)}
	require.NoError(t, a.Assign(future))
	assert.True(t, future.WindowStart.Equal(now.Add(24*time.Hour)), "future record keeps its own window")
	assert.True(t, a.Watermark().Equal(now.Add(DefaultMaxSkew)))

	dropped := 0
	for i := 0; i < 5; i++ {
		rec := &models.LocationRecord{SubjectID: "X", ObservedAt: now.Add(time.Duration(i) * time.Second)}
		if err := a.Assign(rec); err != nil {
			dropped++
		}
	}
	assert.Zero(t, dropped, "on-time records dropped after a +24h record")
}

func TestAssign_MaxSkewOption(t *testing.T) {
	a := NewAssigner(10*time.Second, 5*time.Second, WithClock(testNow), WithMaxSkew(10*time.Second))
	now := testNow()

	require.NoError(t, a.Assign(&models.LocationRecord{ObservedAt: now.Add(time.Hour)}))
	assert.True(t, a.Watermark().Equal(now.Add(10*time.Second)))

	// окно [now, now+10s) еще открыто: watermark now+10s не дальше now+15s
	assert.NoError(t, a.Assign(&models.LocationRecord{ObservedAt: now.Add(time.Second)}))
	// окно [now-10s, now) закрыто: now+10s > now+5s
	assert.ErrorIs(t, a.Assign(&models.LocationRecord{ObservedAt: now.Add(-time.Second)}), models.ErrLateRecord)

	// нулевое и отрицательное значения не меняют умолчание
	b := NewAssigner(10*time.Second, 5*time.Second, WithClock(testNow), WithMaxSkew(0))
	assert.Equal(t, DefaultMaxSkew, b.maxSkew)
}
