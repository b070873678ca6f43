package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows отдает заранее подготовленные строки
type fakeRows struct {
	pgx.Rows
	data    [][]any
	pos     int
	scanErr error
	iterErr error
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.data[r.pos-1]
	if len(row) != len(dest) {
		return fmt.Errorf("expected %d columns, got %d", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *float64:
			*d = v.(float64)
		default:
			return fmt.Errorf("unsupported destination %T", dest[i])
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.iterErr }
func (r *fakeRows) Close()     { r.closed = true }

type fakeQuerier struct {
	rows  *fakeRows
	err   error
	query string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.query = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestLoadZones_Success(t *testing.T) {
	rows := &fakeRows{data: [][]any{
		{"1", "X", "Lucia", "Centro", 39.4699, -0.3763, 100.0, 500.0},
		{"2", "X", "Lucia", "Puerto", 39.4598, -0.3250, 50.0, 300.0},
	}}
	q := &fakeQuerier{rows: rows}
	repo := NewZoneRepository(q)

	zones, err := repo.LoadZones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, "Centro", zones[0].DisplayName)
	assert.Equal(t, "Lucia", zones[0].SubjectDisplay)
	assert.Equal(t, 100.0, zones[0].DangerRadiusM)
	assert.Equal(t, 500.0, zones[0].WarningRadiusM)
	assert.Equal(t, "Puerto", zones[1].DisplayName)
	assert.True(t, rows.closed)
	assert.Contains(t, q.query, "ORDER BY z.subject_id, z.id")
}

func TestLoadZones_Empty(t *testing.T) {
	repo := NewZoneRepository(&fakeQuerier{rows: &fakeRows{}})

	zones, err := repo.LoadZones(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, zones)
	assert.Empty(t, zones)
}

func TestLoadZones_Errors(t *testing.T) {
	queryErr := errors.New("connection reset")

	tests := []struct {
		name string
		q    *fakeQuerier
		want error
	}{
		{"query", &fakeQuerier{err: queryErr}, queryErr},
		{"scan", &fakeQuerier{rows: &fakeRows{data: [][]any{{"1"}}, scanErr: queryErr}}, queryErr},
		{"iteration", &fakeQuerier{rows: &fakeRows{iterErr: queryErr}}, queryErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewZoneRepository(tt.q).LoadZones(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
